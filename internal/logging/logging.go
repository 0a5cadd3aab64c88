package logging

import (
	"github.com/pion/logging"
)

var loggerFactory logging.LoggerFactory = logging.NewDefaultLoggerFactory()

// NewLogger creates a leveled logger for scope. The shared default factory is used
// when factory is nil.
func NewLogger(factory logging.LoggerFactory, scope string) logging.LeveledLogger {
	if factory == nil {
		factory = loggerFactory
	}
	return factory.NewLogger(scope)
}
