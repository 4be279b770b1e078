// Package desensitize masks credentials in log output before it is written.
package desensitize

import (
	"slices"
	"sync"
)

// Hook applies its rules in the order they were added
type Hook struct {
	mu    sync.RWMutex
	rules []Rule
}

func NewHook(rules ...Rule) *Hook {
	h := &Hook{}
	h.Add(rules...)
	return h
}

// Add appends rules, replacing any existing rule of the same name in place
func (h *Hook) Add(rules ...Rule) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for _, r := range rules {
		if r == nil {
			continue
		}
		i := slices.IndexFunc(h.rules, func(x Rule) bool { return x.Name() == r.Name() })
		if i >= 0 {
			h.rules[i] = r
			continue
		}
		h.rules = append(h.rules, r)
	}
}

// Names lists the active rules
func (h *Hook) Names() []string {
	h.mu.RLock()
	defer h.mu.RUnlock()

	names := make([]string, len(h.rules))
	for i, r := range h.rules {
		names[i] = r.Name()
	}
	return names
}

// Mask runs every rule over entry
func (h *Hook) Mask(entry string) string {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, r := range h.rules {
		entry = r.Mask(entry)
	}
	return entry
}
