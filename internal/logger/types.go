package logger

// LoggerV1 is the logging facade passed to every component.
// Implementations must be safe for concurrent use.
type LoggerV1 interface {
	Debug(msg string, args ...Field)
	Info(msg string, args ...Field)
	Warn(msg string, args ...Field)
	Error(msg string, args ...Field)
	With(args ...Field) LoggerV1
}

type Field struct {
	Key   string
	Value any
}
