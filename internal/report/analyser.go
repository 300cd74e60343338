package report

import (
	"fmt"
	"strings"

	"github.com/hashicorp/go-hclog"

	"github.com/scan-io-git/sarif-reporter/internal/bugs"
)

// Analyser makes a single pass over the bugs of a collection, collecting
// one rule per distinct pattern and one result per bug.
type Analyser struct {
	rules     []*rule
	ruleIndex map[string]int
	results   []*Result
	resolver  *Resolver
	logger    hclog.Logger
}

// Analyse translates every bug of the collection. It fails on the first bug
// whose rank has no level.
func Analyse(collection *bugs.Collection, resolver *Resolver, logger hclog.Logger) (*Analyser, error) {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	if resolver == nil {
		resolver = NewResolver(nil, nil, logger)
	}
	a := &Analyser{
		ruleIndex: map[string]int{},
		results:   []*Result{},
		resolver:  resolver,
		logger:    logger,
	}
	for i, bug := range collection.Bugs {
		if err := a.add(bug); err != nil {
			return nil, fmt.Errorf("bug %d (%s): %w", i, bug.Type, err)
		}
	}
	logger.Debug("bugs analysed", "rules", len(a.rules), "results", len(a.results), "bases", resolver.Bases().Len())
	return a, nil
}

func (a *Analyser) add(bug *bugs.Instance) error {
	if bug.Pattern == nil {
		return fmt.Errorf("%w: %s", bugs.ErrUnknownPattern, bug.Type)
	}
	level, err := Level(bug.Rank)
	if err != nil {
		return err
	}

	index := a.ensureRule(bug.Pattern)
	primaryClass := bug.PrimaryClass()
	placeholders := a.rules[index].placeholders

	var arguments []string
	if len(placeholders) > 0 {
		arguments = make([]string, len(placeholders))
		for i, p := range placeholders {
			arguments[i] = formatArgument(p, bug.Annotations, primaryClass)
		}
	}

	result := &Result{
		RuleID:    bug.Type,
		RuleIndex: index,
		Level:     level,
		Message:   &Message{ID: defaultMessageID, Arguments: arguments},
	}
	if loc := a.resolver.Location(bug); loc != nil {
		result.Locations = []*Location{loc}
	}
	a.results = append(a.results, result)
	return nil
}

// Rules returns the rule descriptors in first-seen order.
func (a *Analyser) Rules() []*ReportingDescriptor {
	descriptors := make([]*ReportingDescriptor, len(a.rules))
	for i, r := range a.rules {
		descriptors[i] = r.descriptor
	}
	return descriptors
}

// Results returns one result per analysed bug, in collection order.
func (a *Analyser) Results() []*Result {
	return a.results
}

// Placeholders returns the placeholders extracted for a rule.
func (a *Analyser) Placeholders(ruleID string) []Placeholder {
	index, ok := a.ruleIndex[ruleID]
	if !ok {
		return nil
	}
	return a.rules[index].placeholders
}

// RenderMessage substitutes the arguments of a result into its rule's
// default template.
func (a *Analyser) RenderMessage(result *Result) string {
	if result.RuleIndex < 0 || result.RuleIndex >= len(a.rules) {
		return ""
	}
	template := a.rules[result.RuleIndex].descriptor.MessageStrings[defaultMessageID].Text
	if len(result.Message.Arguments) == 0 {
		return template
	}
	oldnew := make([]string, 0, 2*len(result.Message.Arguments))
	for i, arg := range result.Message.Arguments {
		oldnew = append(oldnew, fmt.Sprintf("{%d}", i), arg)
	}
	return strings.NewReplacer(oldnew...).Replace(template)
}
