package logger

import (
	"log/slog"
	"os"
	"strings"
)

// Logger is the global logger instance
var Logger *slog.Logger
var LogLevel *slog.LevelVar

func init() {
	LogLevel = &slog.LevelVar{}
	opts := &slog.HandlerOptions{
		Level: LogLevel,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == "time" {
				return slog.Attr{Key: "timestamp", Value: slog.TimeValue(a.Value.Time())}
			}
			return a
		},
	}
	// 生成的配置会输出到 stdout,日志统一走 stderr 避免混在一起
	Logger = slog.New(slog.NewTextHandler(os.Stderr, opts))
	LogLevel.Set(slog.LevelError)
}

// SetLogLevel 按名称设置日志级别,未知名称返回 false 且不修改当前级别
func SetLogLevel(level string) bool {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		LogLevel.Set(slog.LevelDebug)
	case "info":
		LogLevel.Set(slog.LevelInfo)
	case "warn", "warning":
		LogLevel.Set(slog.LevelWarn)
	case "error":
		LogLevel.Set(slog.LevelError)
	default:
		return false
	}
	return true
}

// With 返回带有组件名的子 logger
func With(component string) *slog.Logger {
	return Logger.With("component", component)
}
