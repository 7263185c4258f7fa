package errors

import (
	"fmt"
	"runtime"
	"strings"
	"sync"
	"time"
)

var (
	// DefaultHandler receives every report. Replace it with SetHandler.
	DefaultHandler ErrorHandler = &LogHandler{}

	handlerMu sync.RWMutex

	// handlerFile is this file, whose frames are left out of captured stacks.
	handlerFile = func() string {
		_, file, _, _ := runtime.Caller(0)
		return file
	}()
)

// SetHandler installs h and returns the handler it replaces. A nil h
// installs a LogHandler with a no-op logger.
func SetHandler(h ErrorHandler) ErrorHandler {
	if h == nil {
		h = &LogHandler{}
	}
	handlerMu.Lock()
	defer handlerMu.Unlock()
	prev := DefaultHandler
	DefaultHandler = h
	return prev
}

func handler() ErrorHandler {
	handlerMu.RLock()
	defer handlerMu.RUnlock()
	return DefaultHandler
}

// Report stamps err and hands it to the installed handler. Kinds that point
// at a bug rather than at the markup also get the caller's stack.
func Report(err *PickerError) {
	if err == nil {
		return
	}
	if err.Timestamp.IsZero() {
		err.Timestamp = time.Now()
	}
	if err.StackTrace == "" && (err.Kind == KindUnknown || err.Kind == KindPanic) {
		err.StackTrace = CaptureStack()
	}
	handler().HandleError(err)
}

// ReportPanic stamps err and hands it to the installed handler.
func ReportPanic(err *PanicError) {
	if err == nil {
		return
	}
	if err.Timestamp.IsZero() {
		err.Timestamp = time.Now()
	}
	handler().HandlePanic(err)
}

// Recover reports a panic in progress and stops it. Call it deferred:
//
//	defer errors.Recover("picker.onClick")
func Recover(op string) {
	r := recover()
	if r == nil {
		return
	}
	ReportPanic(&PanicError{
		Op:         op,
		Value:      r,
		StackTrace: CaptureStack(),
		Timestamp:  time.Now(),
	})
}

// CaptureStack formats the caller's stack, one "function\n\tfile:line" entry
// per frame. Runtime frames and this package's reporting helpers are
// omitted, so a stack taken inside Recover starts at the panicking frame.
func CaptureStack() string {
	var pcs [32]uintptr
	n := runtime.Callers(2, pcs[:])
	frames := runtime.CallersFrames(pcs[:n])

	var sb strings.Builder
	for {
		frame, more := frames.Next()
		if frame.File != handlerFile && !strings.HasPrefix(frame.Function, "runtime.") {
			fmt.Fprintf(&sb, "%s\n\t%s:%d\n", frame.Function, frame.File, frame.Line)
		}
		if !more {
			break
		}
	}
	return sb.String()
}
