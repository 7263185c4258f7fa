package errors

import "go.uber.org/zap"

// LogHandler is an ErrorHandler that writes to a zap logger. Degraded
// conditions are logged at warn level, panics at error level.
type LogHandler struct {
	// Logger receives the entries. A nil Logger discards them.
	Logger *zap.Logger
	// Verbose adds stack traces to the entries.
	Verbose bool
}

// NewLogHandler returns a LogHandler writing to logger.
func NewLogHandler(logger *zap.Logger, verbose bool) *LogHandler {
	return &LogHandler{Logger: logger, Verbose: verbose}
}

func (h *LogHandler) logger() *zap.Logger {
	if h.Logger == nil {
		return zap.NewNop()
	}
	return h.Logger
}

// HandleError logs a PickerError.
func (h *LogHandler) HandleError(err *PickerError) {
	if err == nil {
		return
	}
	fields := []zap.Field{
		zap.String("op", err.Op),
		zap.Stringer("kind", err.Kind),
		zap.Error(err.Err),
	}
	if err.Input != "" {
		fields = append(fields, zap.String("input", err.Input))
	}
	if h.Verbose && err.StackTrace != "" {
		fields = append(fields, zap.String("stack", err.StackTrace))
	}
	h.logger().Warn("picker degraded", fields...)
}

// HandlePanic logs a PanicError.
func (h *LogHandler) HandlePanic(err *PanicError) {
	if err == nil {
		return
	}
	fields := []zap.Field{
		zap.String("op", err.Op),
		zap.Any("value", err.Value),
	}
	if h.Verbose && err.StackTrace != "" {
		fields = append(fields, zap.String("stack", err.StackTrace))
	}
	h.logger().Error("picker panic", fields...)
}
