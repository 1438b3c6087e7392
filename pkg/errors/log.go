package errors

import (
	"fmt"
	"io"
	"os"
)

// LogHandler is an ErrorHandler that writes one line per report.
type LogHandler struct {
	// Verbose enables stack traces.
	Verbose bool
	// Out receives the log lines. Defaults to os.Stderr.
	Out io.Writer
}

func (h *LogHandler) out() io.Writer {
	if h.Out != nil {
		return h.Out
	}
	return os.Stderr
}

// HandleError logs an Error.
func (h *LogHandler) HandleError(err *Error) {
	if err == nil {
		return
	}
	if h.Verbose {
		fmt.Fprintf(h.out(), "[lazyview error] %s [%s]: %v\n", err.Op, err.Kind, err.Err)
		return
	}
	fmt.Fprintf(h.out(), "[lazyview error] %s: %v\n", err.Op, err.Err)
}

// HandlePanic logs a PanicError.
func (h *LogHandler) HandlePanic(err *PanicError) {
	if err == nil {
		return
	}
	if err.Op != "" {
		fmt.Fprintf(h.out(), "[lazyview panic] %s: %v\n", err.Op, err.Value)
	} else {
		fmt.Fprintf(h.out(), "[lazyview panic] %v\n", err.Value)
	}
	if h.Verbose && err.StackTrace != "" {
		fmt.Fprintf(h.out(), "Stack trace:\n%s\n", err.StackTrace)
	}
}

// HandleBuildError logs a BuildError.
func (h *LogHandler) HandleBuildError(err *BuildError) {
	if err == nil {
		return
	}
	fmt.Fprintf(h.out(), "[lazyview build error] %s\n", err.Error())
	if h.Verbose && err.StackTrace != "" {
		fmt.Fprintf(h.out(), "Stack trace:\n%s\n", err.StackTrace)
	}
}
