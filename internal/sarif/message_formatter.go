package sarif

import (
	"fmt"
	"strings"

	"github.com/owenrumney/go-sarif/v2/sarif"
)

const defaultMessageID = "default"

// FormatResultMessage renders the message of a result. A literal text wins;
// otherwise the rule's default message template is filled with the message
// arguments.
func FormatResultMessage(result *sarif.Result, templates map[string]map[string]string) string {
	if result.Message.Text != nil {
		return formatMessageWithArguments(*result.Message.Text, result.Message.Arguments)
	}
	if result.Message.Markdown != nil {
		return formatMessageWithArguments(*result.Message.Markdown, result.Message.Arguments)
	}
	if result.RuleID != nil {
		if template, ok := templates[*result.RuleID][defaultMessageID]; ok {
			return formatMessageWithArguments(template, result.Message.Arguments)
		}
	}
	return strings.Join(result.Message.Arguments, ", ")
}

// formatMessageWithArguments substitutes {i} placeholders with the matching argument.
func formatMessageWithArguments(template string, arguments []string) string {
	if len(arguments) == 0 {
		return template
	}
	oldnew := make([]string, 0, 2*len(arguments))
	for i, arg := range arguments {
		oldnew = append(oldnew, fmt.Sprintf("{%d}", i), arg)
	}
	return strings.NewReplacer(oldnew...).Replace(template)
}
