// Package errors provides structured, non-fatal error reporting for pickers.
//
// Binding never fails loudly: a missing label, unreadable per-element
// options or a panicking event handler degrade to a no-op. Those conditions
// are still worth knowing about, so they are reported here and routed to a
// pluggable ErrorHandler. The default LogHandler writes them through zap.
package errors

import (
	"fmt"
	"time"
)

// ErrorKind identifies the category of an error.
type ErrorKind int

const (
	// KindUnknown indicates an error of unknown type.
	KindUnknown ErrorKind = iota
	// KindLabel indicates an input whose label could not be resolved.
	KindLabel
	// KindOptions indicates per-element option data that could not be decoded.
	KindOptions
	// KindMarkup indicates markup that could not be parsed or rendered.
	KindMarkup
	// KindConfig indicates an unreadable or invalid configuration file.
	KindConfig
	// KindPanic indicates a recovered panic.
	KindPanic
)

func (k ErrorKind) String() string {
	switch k {
	case KindLabel:
		return "label"
	case KindOptions:
		return "options"
	case KindMarkup:
		return "markup"
	case KindConfig:
		return "config"
	case KindPanic:
		return "panic"
	default:
		return "unknown"
	}
}

// PickerError is a degraded condition observed while binding or driving a
// picker.
type PickerError struct {
	// Op is the operation that observed the problem (e.g., "picker.Bind").
	Op string
	// Kind categorizes the error.
	Kind ErrorKind
	// Input identifies the native input, usually its id attribute.
	Input string
	// Err is the underlying error.
	Err error
	// StackTrace contains the call stack at the time of the error.
	StackTrace string
	// Timestamp is when the error occurred.
	Timestamp time.Time
}

func (e *PickerError) Error() string {
	if e.Input != "" {
		return fmt.Sprintf("%s [%s] input=%s: %v", e.Op, e.Kind, e.Input, e.Err)
	}
	return fmt.Sprintf("%s [%s]: %v", e.Op, e.Kind, e.Err)
}

func (e *PickerError) Unwrap() error {
	return e.Err
}

// PanicError represents a recovered panic.
type PanicError struct {
	// Op is the operation that panicked (e.g., "picker.onChange").
	Op string
	// Value is the value passed to panic().
	Value any
	// StackTrace contains the call stack at the time of the panic.
	StackTrace string
	// Timestamp is when the panic occurred.
	Timestamp time.Time
}

func (e *PanicError) Error() string {
	if e.Op != "" {
		return fmt.Sprintf("panic in %s: %v", e.Op, e.Value)
	}
	return fmt.Sprintf("panic: %v", e.Value)
}

// ErrorHandler receives errors reported by pickers.
type ErrorHandler interface {
	// HandleError is called when a degraded condition is reported.
	HandleError(err *PickerError)
	// HandlePanic is called when a panic is recovered.
	HandlePanic(err *PanicError)
}
