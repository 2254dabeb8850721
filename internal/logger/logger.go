// Package logger builds the application's zap logger.
package logger

import (
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// New creates a JSON logger writing to stdout and a rotating log file.
// The level comes from LOG_LEVEL (debug, info, warn, error), defaulting
// to info.
func New() *zap.Logger {
	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.TimeKey = "timestamp"
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	encoder := zapcore.NewJSONEncoder(encoderConfig)

	level := levelFromEnv()

	consoleCore := zapcore.NewCore(encoder, zapcore.AddSync(os.Stdout), level)
	fileCore := zapcore.NewCore(encoder, zapcore.AddSync(&lumberjack.Logger{
		Filename:   logPath(),
		MaxSize:    100, // MB
		MaxBackups: 3,
		MaxAge:     28, // days
		Compress:   true,
	}), level)

	return zap.New(
		zapcore.NewTee(consoleCore, fileCore),
		zap.AddCaller(),
		zap.AddStacktrace(zapcore.ErrorLevel),
	)
}

func levelFromEnv() zapcore.Level {
	switch os.Getenv("LOG_LEVEL") {
	case "debug":
		return zapcore.DebugLevel
	case "warn":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

func logPath() string {
	dir := os.Getenv("LOG_DIR")
	if dir == "" {
		dir = "logs"
	}
	return filepath.Join(dir, "music-wheel.log")
}
