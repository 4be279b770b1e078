package writer

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	rotatelogs "github.com/lestrrat-go/file-rotatelogs"
	"gopkg.in/natefinch/lumberjack.v2"
)

// RotateMode selects how log files are rolled over
type RotateMode string

const (
	// RotateBySize rolls over once the file reaches MaxSizeMB
	RotateBySize RotateMode = "size"
	// RotateByTime starts a new file every RotationTime
	RotateByTime RotateMode = "time"
)

// ParseRotateMode accepts "size" or "time"; empty means size
func ParseRotateMode(s string) (RotateMode, error) {
	switch m := RotateMode(strings.ToLower(s)); m {
	case "", RotateBySize:
		return RotateBySize, nil
	case RotateByTime:
		return RotateByTime, nil
	default:
		return "", fmt.Errorf("unknown rotate mode %q", s)
	}
}

// FileConfig locates the log file and its rotation policy.
// Files are named <Dir>/<Name>.<Ext>, with a timestamp before Ext in time mode.
type FileConfig struct {
	Mode RotateMode
	Dir  string
	Name string
	Ext  string

	// time mode
	MaxAge       time.Duration
	RotationTime time.Duration

	// size mode
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Compress   bool
}

func (c FileConfig) path(stamp string) string {
	name := c.Name
	if stamp != "" {
		name += "." + stamp
	}
	return filepath.Join(c.Dir, name+"."+c.Ext)
}

// File opens a rotating file writer
func File(c FileConfig) (io.WriteCloser, error) {
	switch c.Mode {
	case RotateByTime:
		w, err := rotatelogs.New(
			c.path("%Y%m%d%H%M"),
			rotatelogs.WithLinkName(c.path("")),
			rotatelogs.WithMaxAge(c.MaxAge),
			rotatelogs.WithRotationTime(c.RotationTime),
		)
		if err != nil {
			return nil, fmt.Errorf("log file: %w", err)
		}
		return w, nil
	case RotateBySize, "":
		return &lumberjack.Logger{
			Filename:   c.path(""),
			MaxSize:    c.MaxSizeMB,
			MaxBackups: c.MaxBackups,
			MaxAge:     c.MaxAgeDays,
			Compress:   c.Compress,
		}, nil
	default:
		return nil, fmt.Errorf("log file: unknown rotate mode %q", c.Mode)
	}
}
