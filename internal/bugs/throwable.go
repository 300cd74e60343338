package bugs

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/pkg/errors"
)

// StackFrame is one entry of a throwable's stack trace.
type StackFrame struct {
	DeclaringClass string `json:"declaringClass"`
	MethodName     string `json:"methodName"`
	FileName       string `json:"fileName,omitempty"`
	LineNumber     int    `json:"lineNumber,omitempty"`
}

// Throwable is a recorded failure with its stack, an optional cause and any
// suppressed failures.
type Throwable struct {
	Kind       string       `json:"kind"`
	Message    *string      `json:"message,omitempty"`
	StackTrace []StackFrame `json:"stackTrace,omitempty"`
	Cause      *Throwable   `json:"cause,omitempty"`
	Suppressed []*Throwable `json:"suppressed,omitempty"`
}

// AnalysisError is an error queued during the analysis run.
type AnalysisError struct {
	Sequence int        `json:"sequence"`
	Message  string     `json:"message"`
	Cause    *Throwable `json:"cause,omitempty"`
}

type stackTracer interface {
	StackTrace() errors.StackTrace
}

// FromError converts a Go error chain into a throwable tree. Stacks come from
// errors created by github.com/pkg/errors; the cause is the wrapped error and
// joined errors become suppressed throwables.
func FromError(err error) *Throwable {
	if err == nil {
		return nil
	}
	t := &Throwable{Kind: fmt.Sprintf("%T", err)}
	if msg := err.Error(); msg != "" {
		t.Message = &msg
	}
	if st, ok := err.(stackTracer); ok {
		t.StackTrace = framesOf(st.StackTrace())
	}
	switch e := err.(type) {
	case interface{ Unwrap() []error }:
		for _, s := range e.Unwrap() {
			if s != nil {
				t.Suppressed = append(t.Suppressed, FromError(s))
			}
		}
	case interface{ Unwrap() error }:
		t.Cause = FromError(e.Unwrap())
	}
	return t
}

func framesOf(trace errors.StackTrace) []StackFrame {
	frames := make([]StackFrame, 0, len(trace))
	for _, f := range trace {
		pc := uintptr(f) - 1
		fn := runtime.FuncForPC(pc)
		if fn == nil {
			frames = append(frames, StackFrame{MethodName: "unknown"})
			continue
		}
		file, line := fn.FileLine(pc)
		pkg, method := splitFuncName(fn.Name())
		frames = append(frames, StackFrame{
			DeclaringClass: pkg,
			MethodName:     method,
			FileName:       file,
			LineNumber:     line,
		})
	}
	return frames
}

// splitFuncName splits "example.com/a/b.(*T).M" into "example.com/a/b" and "(*T).M".
func splitFuncName(name string) (string, string) {
	slash := strings.LastIndex(name, "/")
	dot := strings.Index(name[slash+1:], ".")
	if dot < 0 {
		return "", name
	}
	dot += slash + 1
	return name[:dot], name[dot+1:]
}
