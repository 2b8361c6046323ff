package logger

import (
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/veritlyapp-cell/liah-backend/pkg/config"
)

var (
	// Logger is the global structured logger instance
	Logger *zap.Logger
	// Sugar is the global sugared logger (printf-style helpers)
	Sugar *zap.SugaredLogger
)

// Init sets up the logging system from config. Supports console, file
// or both outputs.
func Init(cfg *config.LoggingConfig) error {
	level := parseLevel(cfg.Level)

	encoderConfig := zapcore.EncoderConfig{
		TimeKey:        "time",
		LevelKey:       "level",
		NameKey:        "logger",
		CallerKey:      "caller",
		MessageKey:     "msg",
		StacktraceKey:  "stacktrace",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.CapitalColorLevelEncoder,
		EncodeTime:     zapcore.ISO8601TimeEncoder,
		EncodeDuration: zapcore.SecondsDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
	}

	var cores []zapcore.Core

	switch cfg.Output {
	case "file":
		fileEncoderConfig := encoderConfig
		fileEncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder // no color in files

		fileWriter, err := getFileWriter(cfg.File)
		if err != nil {
			return err
		}
		cores = append(cores, zapcore.NewCore(
			zapcore.NewJSONEncoder(fileEncoderConfig),
			fileWriter,
			level,
		))

	case "both":
		cores = append(cores, zapcore.NewCore(
			zapcore.NewConsoleEncoder(encoderConfig),
			zapcore.AddSync(os.Stdout),
			level,
		))

		fileEncoderConfig := encoderConfig
		fileEncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder

		fileWriter, err := getFileWriter(cfg.File)
		if err != nil {
			return err
		}
		cores = append(cores, zapcore.NewCore(
			zapcore.NewJSONEncoder(fileEncoderConfig),
			fileWriter,
			level,
		))

	default: // console
		cores = append(cores, zapcore.NewCore(
			zapcore.NewConsoleEncoder(encoderConfig),
			zapcore.AddSync(os.Stdout),
			level,
		))
	}

	core := zapcore.NewTee(cores...)
	Logger = zap.New(core, zap.AddCaller(), zap.AddStacktrace(zapcore.ErrorLevel))
	Sugar = Logger.Sugar()
	return nil
}

func parseLevel(level string) zapcore.Level {
	switch level {
	case "debug":
		return zapcore.DebugLevel
	case "warn", "warning":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

func getFileWriter(path string) (zapcore.WriteSyncer, error) {
	if path == "" {
		path = "logs/liah-backend.log"
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, err
	}
	return zapcore.AddSync(f), nil
}

// ensureInit falls back to a development logger when Init was not called
// (tests, early startup failures).
func ensureInit() {
	if Sugar == nil {
		l, _ := zap.NewDevelopment()
		Logger = l
		Sugar = l.Sugar()
	}
}

func Debugf(format string, args ...interface{}) {
	ensureInit()
	Sugar.Debugf(format, args...)
}

func Infof(format string, args ...interface{}) {
	ensureInit()
	Sugar.Infof(format, args...)
}

func Warnf(format string, args ...interface{}) {
	ensureInit()
	Sugar.Warnf(format, args...)
}

func Errorf(format string, args ...interface{}) {
	ensureInit()
	Sugar.Errorf(format, args...)
}

func Fatalf(format string, args ...interface{}) {
	ensureInit()
	Sugar.Fatalf(format, args...)
}

func Info(args ...interface{}) {
	ensureInit()
	Sugar.Info(args...)
}

func Warn(args ...interface{}) {
	ensureInit()
	Sugar.Warn(args...)
}

func Error(args ...interface{}) {
	ensureInit()
	Sugar.Error(args...)
}

// Sync flushes buffered log entries. Call on shutdown.
func Sync() {
	if Logger != nil {
		_ = Logger.Sync()
	}
}
