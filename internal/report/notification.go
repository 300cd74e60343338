package report

import (
	"fmt"
	"sort"
	"strings"

	"github.com/scan-io-git/sarif-reporter/internal/bugs"
)

const (
	missingClassesID = "spotbugs-missing-classes"
	noMessage        = "no message given"
)

func configurationNotifications(missingClasses []string) []*Notification {
	notifications := []*Notification{}
	if len(missingClasses) == 0 {
		return notifications
	}
	names := make([]string, len(missingClasses))
	for i, name := range missingClasses {
		names[i] = bugs.DottedClassName(name)
	}
	sort.Strings(names)
	return append(notifications, &Notification{
		Descriptor: &ReportingDescriptorReference{ID: missingClassesID},
		Message: &Message{
			Text: fmt.Sprintf("Classes needed for analysis were missing: [%s]", strings.Join(names, ", ")),
		},
		Level: LevelError,
	})
}

func executionNotifications(queued []bugs.AnalysisError, resolver *Resolver) []*Notification {
	notifications := make([]*Notification, 0, len(queued))
	for _, e := range queued {
		n := &Notification{
			Descriptor: &ReportingDescriptorReference{ID: fmt.Sprintf("spotbugs-error-%d", e.Sequence)},
			Message:    &Message{Text: e.Message},
			Level:      LevelError,
		}
		if e.Cause != nil {
			n.Exception = newException(e.Cause, resolver)
		}
		notifications = append(notifications, n)
	}
	return notifications
}

func newException(t *bugs.Throwable, resolver *Resolver) *Exception {
	message := noMessage
	if t.Message != nil {
		message = *t.Message
	}

	frames := make([]*StackFrame, 0, len(t.StackTrace))
	for _, frame := range t.StackTrace {
		frames = append(frames, &StackFrame{Location: resolver.StackLocation(frame)})
	}

	var inner []*Exception
	if t.Cause != nil {
		inner = append(inner, newException(t.Cause, resolver))
	}
	for _, s := range t.Suppressed {
		inner = append(inner, newException(s, resolver))
	}

	return &Exception{
		Kind:            t.Kind,
		Message:         message,
		Stack:           &Stack{Message: &Message{Text: message}, Frames: frames},
		InnerExceptions: inner,
	}
}
