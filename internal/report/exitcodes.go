package report

import "strings"

// Exit code flags combined into the invocation exit code.
const (
	BugsFoundFlag    = 1
	MissingClassFlag = 2
	ErrorFlag        = 4
)

// ExitCode combines the outcome of an analysis run into flags.
func ExitCode(errorCount, missingClassCount, bugCount int) int {
	code := 0
	if errorCount > 0 {
		code |= ErrorFlag
	}
	if missingClassCount > 0 {
		code |= MissingClassFlag
	}
	if bugCount > 0 {
		code |= BugsFoundFlag
	}
	return code
}

// SignalName describes an exit code, e.g. "ERROR,BUGS FOUND".
func SignalName(code int) string {
	if code == 0 {
		return "SUCCESS"
	}
	var names []string
	if code&ErrorFlag != 0 {
		names = append(names, "ERROR")
	}
	if code&MissingClassFlag != 0 {
		names = append(names, "MISSING CLASS")
	}
	if code&BugsFoundFlag != 0 {
		names = append(names, "BUGS FOUND")
	}
	if len(names) == 0 {
		return "UNKNOWN"
	}
	return strings.Join(names, ",")
}
