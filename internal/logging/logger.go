// Package logging builds the JSON zap logger shared by all components.
package logging

import (
	"io"
	"os"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New returns a JSON logger writing to stdout at the given level.
// Timestamps are rendered in loc.
func New(level string, loc *time.Location) (*zap.Logger, error) {
	return NewWithWriter(os.Stdout, level, loc)
}

// NewWithWriter is like New but writes to w.
func NewWithWriter(w io.Writer, level string, loc *time.Location) (*zap.Logger, error) {
	lvl, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return nil, err
	}
	if loc == nil {
		loc = time.UTC
	}

	encCfg := zap.NewProductionEncoderConfig()
	encCfg.TimeKey = "ts"
	encCfg.MessageKey = "msg"
	encCfg.EncodeTime = func(t time.Time, enc zapcore.PrimitiveArrayEncoder) {
		enc.AppendString(t.In(loc).Format(time.RFC3339Nano))
	}

	core := zapcore.NewCore(zapcore.NewJSONEncoder(encCfg), zapcore.AddSync(w), lvl)
	return zap.New(core), nil
}
