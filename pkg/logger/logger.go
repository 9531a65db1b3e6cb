package logger

import (
	"os"
	"pairflow/conf"
	"strings"

	"github.com/natefinch/lumberjack"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// 日志封装：zap + lumberjack 滚动切割
// 未调用 InitLogger 前使用 Nop logger，保证单元测试下安静且不会 panic

type Field = zap.Field

var (
	log   = zap.NewNop()
	sugar = log.Sugar()
)

// Pair 构造一个结构化字段
func Pair(key string, value interface{}) Field {
	return zap.Any(key, value)
}

// InitLogger 根据配置初始化全局logger
// appName 会作为初始字段写入每条日志
func InitLogger(cfg *conf.LogConfig, appName string) {
	level := parseLevel(cfg.Level)

	encCfg := zap.NewProductionEncoderConfig()
	layout := cfg.TimeFormat
	if layout == "" {
		layout = "2006-01-02 15:04:05.000"
	}
	encCfg.EncodeTime = zapcore.TimeEncoderOfLayout(layout)
	encCfg.EncodeDuration = zapcore.StringDurationEncoder

	var cores []zapcore.Core

	if cfg.FileName != "" {
		// 文件输出走lumberjack做切割归档
		w := zapcore.AddSync(&lumberjack.Logger{
			Filename:   cfg.FileName,
			MaxSize:    cfg.MaxSize,
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAge,
			Compress:   cfg.Compress,
			LocalTime:  cfg.LocalTime,
		})
		cores = append(cores, zapcore.NewCore(zapcore.NewJSONEncoder(encCfg), w, level))
	}

	if cfg.Console || cfg.FileName == "" {
		consoleCfg := encCfg
		consoleCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
		cores = append(cores, zapcore.NewCore(
			zapcore.NewConsoleEncoder(consoleCfg),
			zapcore.AddSync(os.Stdout),
			level,
		))
	}

	core := zapcore.NewTee(cores...)
	log = zap.New(core,
		zap.AddCaller(),
		zap.AddCallerSkip(1),
		zap.Fields(zap.String("app", appName)),
	)
	sugar = log.Sugar()
}

func parseLevel(s string) zapcore.Level {
	switch strings.ToLower(s) {
	case "debug":
		return zapcore.DebugLevel
	case "info", "":
		return zapcore.InfoLevel
	case "warn":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

func Debug(msg string, fields ...Field) { log.Debug(msg, fields...) }
func Info(msg string, fields ...Field)  { log.Info(msg, fields...) }
func Warn(msg string, fields ...Field)  { log.Warn(msg, fields...) }
func Error(msg string, fields ...Field) { log.Error(msg, fields...) }
func Fatal(msg string, fields ...Field) { log.Fatal(msg, fields...) }

func Debugf(format string, args ...interface{}) { sugar.Debugf(format, args...) }
func Infof(format string, args ...interface{})  { sugar.Infof(format, args...) }
func Warnf(format string, args ...interface{})  { sugar.Warnf(format, args...) }
func Errorf(format string, args ...interface{}) { sugar.Errorf(format, args...) }
func Fatalf(format string, args ...interface{}) { sugar.Fatalf(format, args...) }

// Sync 刷新缓冲，进程退出前调用
func Sync() error {
	return log.Sync()
}
