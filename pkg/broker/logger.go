package broker

import (
	"github.com/ThreeDotsLabs/watermill"
	"go.uber.org/zap"
)

// zapAdapter lets watermill components log through the application logger.
type zapAdapter struct {
	log *zap.Logger
}

func NewWatermillLogger(log *zap.Logger) watermill.LoggerAdapter {
	return &zapAdapter{log: log.With(zap.String("component", "watermill"))}
}

func fieldsToZap(fields watermill.LogFields) []zap.Field {
	out := make([]zap.Field, 0, len(fields))
	for k, v := range fields {
		out = append(out, zap.Any(k, v))
	}
	return out
}

func (a *zapAdapter) Error(msg string, err error, fields watermill.LogFields) {
	a.log.Error(msg, append(fieldsToZap(fields), zap.Error(err))...)
}

func (a *zapAdapter) Info(msg string, fields watermill.LogFields) {
	a.log.Info(msg, fieldsToZap(fields)...)
}

func (a *zapAdapter) Debug(msg string, fields watermill.LogFields) {
	a.log.Debug(msg, fieldsToZap(fields)...)
}

// Trace is folded into debug; zap has no lower level.
func (a *zapAdapter) Trace(msg string, fields watermill.LogFields) {
	a.log.Debug(msg, fieldsToZap(fields)...)
}

func (a *zapAdapter) With(fields watermill.LogFields) watermill.LoggerAdapter {
	return &zapAdapter{log: a.log.With(fieldsToZap(fields)...)}
}
