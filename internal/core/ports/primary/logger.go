package primary

// Logger is the logging port every component receives. Matches the
// key/value style of the zap adapter.
type Logger interface {
	Info(msg string, args ...interface{})
	Error(msg string, args ...interface{})
	Debug(msg string, args ...interface{})
	Warn(msg string, args ...interface{})
}
