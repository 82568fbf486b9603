package logging

import (
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Logger is the process-wide logger. It writes text to stderr until Init
// reconfigures it.
var Logger = logrus.New()

type Options struct {
	Level  string
	Format string
	// File enables size-based rotation through lumberjack when set.
	File string
}

// Init applies opts to Logger. An unparsable level falls back to info.
func Init(opts Options) {
	level, err := logrus.ParseLevel(opts.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	Logger.SetLevel(level)

	switch strings.ToLower(opts.Format) {
	case "json":
		Logger.SetFormatter(&logrus.JSONFormatter{})
	default:
		Logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	var out io.Writer = os.Stderr
	if opts.File != "" {
		out = io.MultiWriter(os.Stderr, &lumberjack.Logger{
			Filename:   opts.File,
			MaxSize:    10,
			MaxBackups: 3,
			MaxAge:     28,
			Compress:   true,
		})
	}
	Logger.SetOutput(out)
}

// Component returns an entry tagged with the emitting component.
func Component(name string) *logrus.Entry {
	return Logger.WithField("component", name)
}
