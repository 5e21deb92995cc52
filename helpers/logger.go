package helpers

import (
	"aliyevr/binascraper/logger"
)

// LoggerInterface defines the interface for logger implementations
type LoggerInterface interface {
	LogError(component string, err error)
	LogInfo(format string, args ...interface{})
}

// ZerologAdapter bridges LoggerInterface to the structured logger
type ZerologAdapter struct{}

// LogError logs an error tagged with the originating component
func (z *ZerologAdapter) LogError(component string, err error) {
	logger.LogError(component, err, "")
}

// LogInfo logs an informational message
func (z *ZerologAdapter) LogInfo(format string, args ...interface{}) {
	logger.Info(format, args...)
}
