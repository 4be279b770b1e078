package log

import (
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/kochabx/vetclinic/log/writer"
)

// Config selects the log level and optional file output
type Config struct {
	Level string     `mapstructure:"level" json:"level"`
	File  FileConfig `mapstructure:"file" json:"file"`
	// MaskEmails also shortens e-mail addresses, which are kept by default
	MaskEmails bool `mapstructure:"mask_emails" json:"mask_emails"`
}

// FileConfig log file output
type FileConfig struct {
	Enabled    bool   `mapstructure:"enabled" json:"enabled"`
	Filepath   string `mapstructure:"filepath" json:"filepath"`
	Filename   string `mapstructure:"filename" json:"filename"`
	FileExt    string `mapstructure:"file_ext" json:"file_ext"`
	RotateMode string `mapstructure:"rotate_mode" json:"rotate_mode"`

	// time rotation, hours
	MaxAgeHours  int `mapstructure:"max_age_hours" json:"max_age_hours"`
	RotationTime int `mapstructure:"rotation_time" json:"rotation_time"`

	// size rotation
	MaxSize    int  `mapstructure:"max_size" json:"max_size"`
	MaxBackups int  `mapstructure:"max_backups" json:"max_backups"`
	MaxAgeDays int  `mapstructure:"max_age_days" json:"max_age_days"`
	Compress   bool `mapstructure:"compress" json:"compress"`
}

// ParseLevel parses a level name, falling back to info
func ParseLevel(level string) zerolog.Level {
	l, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil || level == "" {
		return zerolog.InfoLevel
	}
	return l
}

func (c *FileConfig) withDefaults() FileConfig {
	out := *c
	if out.Filepath == "" {
		out.Filepath = "log"
	}
	if out.Filename == "" {
		out.Filename = "vetclinic"
	}
	if out.FileExt == "" {
		out.FileExt = "log"
	}
	if out.MaxAgeHours == 0 {
		out.MaxAgeHours = 24
	}
	if out.RotationTime == 0 {
		out.RotationTime = 1
	}
	if out.MaxSize == 0 {
		out.MaxSize = 100
	}
	if out.MaxBackups == 0 {
		out.MaxBackups = 5
	}
	if out.MaxAgeDays == 0 {
		out.MaxAgeDays = 30
	}
	return out
}

func (c *FileConfig) toWriterConfig() (writer.FileConfig, error) {
	d := c.withDefaults()
	mode, err := writer.ParseRotateMode(d.RotateMode)
	if err != nil {
		return writer.FileConfig{}, err
	}
	return writer.FileConfig{
		Mode:         mode,
		Dir:          d.Filepath,
		Name:         d.Filename,
		Ext:          d.FileExt,
		MaxAge:       time.Duration(d.MaxAgeHours) * time.Hour,
		RotationTime: time.Duration(d.RotationTime) * time.Hour,
		MaxSizeMB:    d.MaxSize,
		MaxBackups:   d.MaxBackups,
		MaxAgeDays:   d.MaxAgeDays,
		Compress:     d.Compress,
	}, nil
}
