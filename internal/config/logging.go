package config

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/snowzach/rotatefilehook"
)

type LogFile struct {
	Filename   string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
}

// NewLogFile returns ok == false when LOG_FILE is not set.
func NewLogFile() (logFile *LogFile, ok bool, err error) {
	filename, ok := os.LookupEnv("LOG_FILE")
	if !ok || filename == "" {
		return nil, false, nil
	}
	maxSize, err := intOr("LOG_FILE_MAX_SIZE_MB", 50)
	if err != nil {
		return nil, false, err
	}
	maxBackups, err := intOr("LOG_FILE_MAX_BACKUPS", 3)
	if err != nil {
		return nil, false, err
	}
	maxAge, err := intOr("LOG_FILE_MAX_AGE_DAYS", 28)
	if err != nil {
		return nil, false, err
	}
	logFile = &LogFile{
		Filename:   filename,
		MaxSizeMB:  maxSize,
		MaxBackups: maxBackups,
		MaxAgeDays: maxAge,
	}
	return logFile, true, nil
}

func (f LogFile) Hook(level logrus.Level) (logrus.Hook, error) {
	return rotatefilehook.NewRotateFileHook(rotatefilehook.RotateFileConfig{
		Filename:   f.Filename,
		MaxSize:    f.MaxSizeMB,
		MaxBackups: f.MaxBackups,
		MaxAge:     f.MaxAgeDays,
		Level:      level,
		Formatter:  &logrus.JSONFormatter{},
	})
}
