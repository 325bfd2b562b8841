package logger

import (
	"os"

	"go.uber.org/zap"
)

// New builds the process logger: production JSON by default, console encoder
// when APP_ENV=development.
func New() *zap.Logger {
	if os.Getenv("APP_ENV") == "development" {
		return zap.Must(zap.NewDevelopment())
	}
	return zap.Must(zap.NewProduction())
}
