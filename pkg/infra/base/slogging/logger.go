// 指示: miu200521358
// Package slogging はzapベースのロギング基盤を提供する。
package slogging

import (
	"os"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Level はログレベルを表す。
type Level string

const (
	// LOG_LEVEL_DEBUG はデバッグレベルを表す。
	LOG_LEVEL_DEBUG Level = "debug"
	// LOG_LEVEL_INFO は情報レベルを表す。
	LOG_LEVEL_INFO Level = "info"
	// LOG_LEVEL_WARN は警告レベルを表す。
	LOG_LEVEL_WARN Level = "warn"
	// LOG_LEVEL_ERROR はエラーレベルを表す。
	LOG_LEVEL_ERROR Level = "error"
)

// FileConfig はファイル出力の設定を表す。
type FileConfig struct {
	Path       string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Compress   bool
}

// DefaultFileConfig は既定のファイル出力設定を返す。
func DefaultFileConfig(path string) *FileConfig {
	return &FileConfig{
		Path:       path,
		MaxSizeMB:  50,
		MaxBackups: 3,
		MaxAgeDays: 7,
		Compress:   true,
	}
}

// ILogger はロギング契約を表す。
type ILogger interface {
	// SetLevel は出力レベルを切り替える。
	SetLevel(level Level)
	// Debug はデバッグログを出力する。
	Debug(format string, params ...any)
	// Info は情報ログを出力する。
	Info(format string, params ...any)
	// Warn は警告ログを出力する。
	Warn(format string, params ...any)
	// Error はエラーログを出力する。
	Error(format string, params ...any)
	// Sync はバッファ済みログを書き出す。
	Sync()
}

// Logger はzapによるILogger実装を表す。
type Logger struct {
	sugar *zap.SugaredLogger
	base  *zap.Logger
	level zap.AtomicLevel
}

// NewLogger はコンソール出力とファイル出力を束ねたロガーを生成する。
// fileConfig が nil の場合はコンソール出力のみになる。
func NewLogger(level Level, fileConfig *FileConfig) *Logger {
	atomicLevel := zap.NewAtomicLevelAt(parseLevel(level))

	cores := []zapcore.Core{
		zapcore.NewCore(
			zapcore.NewConsoleEncoder(zapcore.EncoderConfig{
				TimeKey:          "time",
				LevelKey:         "level",
				MessageKey:       "msg",
				EncodeTime:       zapcore.TimeEncoderOfLayout("15:04:05"),
				EncodeLevel:      zapcore.CapitalLevelEncoder,
				ConsoleSeparator: " ",
			}),
			zapcore.AddSync(os.Stdout),
			atomicLevel,
		),
	}

	if fileConfig != nil && fileConfig.Path != "" {
		fileWriter := &lumberjack.Logger{
			Filename:   fileConfig.Path,
			MaxSize:    fileConfig.MaxSizeMB,
			MaxBackups: fileConfig.MaxBackups,
			MaxAge:     fileConfig.MaxAgeDays,
			Compress:   fileConfig.Compress,
			LocalTime:  true,
		}
		cores = append(cores, zapcore.NewCore(
			zapcore.NewConsoleEncoder(zapcore.EncoderConfig{
				TimeKey:          "time",
				LevelKey:         "level",
				MessageKey:       "msg",
				EncodeTime:       zapcore.ISO8601TimeEncoder,
				EncodeLevel:      zapcore.CapitalLevelEncoder,
				ConsoleSeparator: " ",
			}),
			zapcore.AddSync(fileWriter),
			atomicLevel,
		))
	}

	base := zap.New(zapcore.NewTee(cores...))
	return &Logger{
		sugar: base.Sugar(),
		base:  base,
		level: atomicLevel,
	}
}

// SetLevel は出力レベルを切り替える。
func (l *Logger) SetLevel(level Level) {
	if l == nil {
		return
	}
	l.level.SetLevel(parseLevel(level))
}

// Debug はデバッグログを出力する。
func (l *Logger) Debug(format string, params ...any) {
	if l == nil {
		return
	}
	l.sugar.Debugf(format, params...)
}

// Info は情報ログを出力する。
func (l *Logger) Info(format string, params ...any) {
	if l == nil {
		return
	}
	l.sugar.Infof(format, params...)
}

// Warn は警告ログを出力する。
func (l *Logger) Warn(format string, params ...any) {
	if l == nil {
		return
	}
	l.sugar.Warnf(format, params...)
}

// Error はエラーログを出力する。
func (l *Logger) Error(format string, params ...any) {
	if l == nil {
		return
	}
	l.sugar.Errorf(format, params...)
}

// Sync はバッファ済みログを書き出す。
func (l *Logger) Sync() {
	if l == nil {
		return
	}
	_ = l.base.Sync()
}

var (
	defaultLoggerMu sync.RWMutex
	defaultLogger   ILogger
)

// DefaultLogger は共有ロガーを返す。未設定の場合はnilを返す。
func DefaultLogger() ILogger {
	defaultLoggerMu.RLock()
	defer defaultLoggerMu.RUnlock()
	return defaultLogger
}

// SetDefaultLogger は共有ロガーを設定する。
func SetDefaultLogger(logger ILogger) {
	defaultLoggerMu.Lock()
	defer defaultLoggerMu.Unlock()
	defaultLogger = logger
}

// parseLevel はレベル文字列をzapcore.Levelへ変換する。
func parseLevel(level Level) zapcore.Level {
	switch level {
	case LOG_LEVEL_DEBUG:
		return zapcore.DebugLevel
	case LOG_LEVEL_WARN:
		return zapcore.WarnLevel
	case LOG_LEVEL_ERROR:
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}
