package logger

import "github.com/hashicorp/go-retryablehttp"

// retryableLogger adapts our Logger to retryablehttp's leveled logging interface
type retryableLogger struct {
	logger *Logger
}

// GetRetryableLogger returns a retryablehttp-compatible logger
func (l *Logger) GetRetryableLogger() retryablehttp.LeveledLogger {
	return &retryableLogger{logger: l}
}

func (r *retryableLogger) Debug(msg string, keyvals ...interface{}) {
	r.logger.Debugw(msg, keyvals...)
}

func (r *retryableLogger) Info(msg string, keyvals ...interface{}) {
	r.logger.Infow(msg, keyvals...)
}

func (r *retryableLogger) Warn(msg string, keyvals ...interface{}) {
	r.logger.Warnw(msg, keyvals...)
}

func (r *retryableLogger) Error(msg string, keyvals ...interface{}) {
	r.logger.Errorw(msg, keyvals...)
}
