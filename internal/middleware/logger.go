package middleware

import "go.uber.org/zap"

var log = zap.NewNop().Sugar()

// SetLogger передаёт логгер приложения в middleware.
func SetLogger(l *zap.SugaredLogger) {
	if l != nil {
		log = l
	}
}
