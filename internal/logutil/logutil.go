// internal/logutil/logutil.go
package logutil

import (
	"io"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New builds the tool's diagnostic logger: console-encoded lines on w
// (normally stderr), no timestamps so progress lines stay grep-friendly.
// quiet raises the level to warn.
func New(w io.Writer, quiet bool) *zap.SugaredLogger {
	level := zapcore.InfoLevel
	if quiet {
		level = zapcore.WarnLevel
	}
	encCfg := zap.NewDevelopmentEncoderConfig()
	encCfg.TimeKey = ""
	encCfg.EncodeLevel = zapcore.CapitalLevelEncoder
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(encCfg), zapcore.AddSync(w), level)
	return zap.New(core).Sugar()
}
