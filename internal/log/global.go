package log

import "sync"

// The process default starts out as a DefaultConfig logger so code that logs
// before flag parsing still has somewhere to write.
var (
	defaultMu     sync.RWMutex
	defaultLogger = New(DefaultConfig())
)

// SetDefaultLogger replaces the process-wide default logger. Nil is ignored
// so the default can never become unusable.
func SetDefaultLogger(logger *Logger) {
	if logger == nil {
		return
	}
	defaultMu.Lock()
	defaultLogger = logger
	defaultMu.Unlock()
}

// DefaultLogger returns the process-wide default logger
func DefaultLogger() *Logger {
	defaultMu.RLock()
	defer defaultMu.RUnlock()
	return defaultLogger
}
