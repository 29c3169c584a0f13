package port

// Logger is the narrow logging interface services depend on, keeping the
// logging backend swappable.
type Logger interface {
	Info(msg string, args ...any)
	Debug(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}
