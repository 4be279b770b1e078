package desensitize

import (
	"fmt"
	"regexp"
	"strings"
)

// Rule masks sensitive parts of one encoded log entry
type Rule interface {
	Name() string
	Mask(entry string) string
}

// PatternRule replaces every match of a regexp anywhere in the entry
type PatternRule struct {
	name        string
	re          *regexp.Regexp
	replacement string
}

// NewPatternRule compiles pattern. replacement may reference groups ($1).
func NewPatternRule(name, pattern, replacement string) (*PatternRule, error) {
	if name == "" || pattern == "" {
		return nil, fmt.Errorf("desensitize: rule needs a name and a pattern")
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("desensitize: rule %s: %w", name, err)
	}
	return &PatternRule{name: name, re: re, replacement: replacement}, nil
}

func (r *PatternRule) Name() string { return r.name }

func (r *PatternRule) Mask(entry string) string {
	return r.re.ReplaceAllString(entry, r.replacement)
}

// FieldRule hides the whole value of the named JSON string fields. Keys are
// matched exactly, so "token" does not touch "token_type".
type FieldRule struct {
	name string
	re   *regexp.Regexp
	mask string
}

// NewFieldRule masks the string value of every field in fields with mask
func NewFieldRule(name, mask string, fields ...string) (*FieldRule, error) {
	if name == "" || len(fields) == 0 {
		return nil, fmt.Errorf("desensitize: rule needs a name and at least one field")
	}
	quoted := make([]string, len(fields))
	for i, f := range fields {
		quoted[i] = regexp.QuoteMeta(f)
	}
	// group 1 is the escaped string body
	re, err := regexp.Compile(`"(?:` + strings.Join(quoted, "|") + `)"\s*:\s*"((?:[^"\\]|\\.)*)"`)
	if err != nil {
		return nil, fmt.Errorf("desensitize: rule %s: %w", name, err)
	}
	return &FieldRule{name: name, re: re, mask: mask}, nil
}

func (r *FieldRule) Name() string { return r.name }

func (r *FieldRule) Mask(entry string) string {
	locs := r.re.FindAllStringSubmatchIndex(entry, -1)
	if len(locs) == 0 {
		return entry
	}
	var b strings.Builder
	b.Grow(len(entry))
	last := 0
	for _, loc := range locs {
		b.WriteString(entry[last:loc[2]])
		b.WriteString(r.mask)
		last = loc[3]
	}
	b.WriteString(entry[last:])
	return b.String()
}

func must[R Rule](r R, err error) R {
	if err != nil {
		panic(err)
	}
	return r
}

const mask = "******"

var (
	// CredentialsRule hides passwords and session tokens logged as fields
	CredentialsRule = must(NewFieldRule("credentials", mask, "password", "access_token", "token"))

	// BearerRule hides Authorization header values wherever they appear
	BearerRule = must(NewPatternRule("bearer", `Bearer\s+[A-Za-z0-9\-._~+/]+=*`, "Bearer "+mask))

	// EmailRule shortens e-mail addresses to u***r@e***.com
	EmailRule = must(NewPatternRule("email",
		`\b([A-Za-z0-9])[A-Za-z0-9._%+-]*([A-Za-z0-9])@([A-Za-z0-9])[A-Za-z0-9.-]*\.([A-Za-z]{2,})\b`,
		"$1***$2@$3***.$4"))
)

// Credentials returns the rules every logger applies
func Credentials() []Rule {
	return []Rule{CredentialsRule, BearerRule}
}
