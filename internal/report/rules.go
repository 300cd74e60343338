package report

import (
	"github.com/scan-io-git/sarif-reporter/internal/bugs"
)

const defaultMessageID = "default"

type rule struct {
	descriptor   *ReportingDescriptor
	placeholders []Placeholder
}

// ensureRule returns the rule index of a pattern, creating the rule on first use.
func (a *Analyser) ensureRule(pattern *bugs.Pattern) int {
	if index, ok := a.ruleIndex[pattern.Type]; ok {
		return index
	}

	template, placeholders, err := parseMessageFormat(pattern.LongDescription)
	if err != nil {
		a.logger.Warn("keeping message template verbatim", "type", pattern.Type, "error", err)
		template, placeholders = pattern.LongDescription, nil
	}

	index := len(a.rules)
	a.rules = append(a.rules, &rule{
		descriptor:   newDescriptor(pattern, template),
		placeholders: placeholders,
	})
	a.ruleIndex[pattern.Type] = index
	return index
}

func newDescriptor(pattern *bugs.Pattern, template string) *ReportingDescriptor {
	d := &ReportingDescriptor{
		ID:               pattern.Type,
		ShortDescription: &MultiformatMessageString{Text: pattern.ShortDescription},
		FullDescription:  &MultiformatMessageString{Text: pattern.DetailText},
		MessageStrings: map[string]*MultiformatMessageString{
			defaultMessageID: {Text: template},
		},
	}
	if pattern.HelpURLTemplate != "" {
		d.HelpURI = pattern.HelpURLTemplate + "#" + pattern.Type
	}
	if category := pattern.Category; category != "" {
		d.Properties = &RuleProperties{Tags: []string{category}}
	}
	return d
}
