package utils

import (
	"strings"

	"go.uber.org/zap"
)

// Log is the process logger. It is a no-op until InitLogger runs, which keeps
// tests quiet.
var Log = zap.NewNop()

// InitLogger installs the process logger: colored console output in
// development, JSON otherwise.
func InitLogger(development bool) (*zap.Logger, error) {
	var (
		l   *zap.Logger
		err error
	)
	if development {
		l, err = zap.NewDevelopment()
	} else {
		l, err = zap.NewProduction()
	}
	if err != nil {
		return nil, err
	}
	Log = l
	zap.ReplaceGlobals(l)
	return l, nil
}

// LogEvent writes a standardized line with module/action/request_id.
// Avoid logging sensitive payload; message should be summarized.
func LogEvent(requestID, module, action, message string, fields ...zap.Field) {
	base := []zap.Field{
		zap.String("module", strings.ToUpper(module)),
		zap.String("action", action),
		zap.String("request_id", strings.TrimSpace(requestID)),
	}
	Log.Info(message, append(base, fields...)...)
}
