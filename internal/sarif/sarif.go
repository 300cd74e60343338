package sarif

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/hashicorp/go-hclog"
	"github.com/owenrumney/go-sarif/v2/sarif"
)

const levelProperty = "Level"

type Report struct {
	*sarif.Report
	logger hclog.Logger
	// templates maps rule id to message string id to the message template.
	templates map[string]map[string]string
}

type ToolMetadata struct {
	Name    string
	Version *string
}

// ResultSummary is a flattened, printable view of one result.
type ResultSummary struct {
	RuleID   string
	Level    string
	Message  string
	Location string
}

// messageStrings mirrors just the rule message strings of a SARIF log.
type messageStrings struct {
	Runs []struct {
		Tool struct {
			Driver struct {
				Rules []struct {
					ID             string `json:"id"`
					MessageStrings map[string]struct {
						Text string `json:"text"`
					} `json:"messageStrings"`
				} `json:"rules"`
			} `json:"driver"`
		} `json:"tool"`
	} `json:"runs"`
}

func readSarifReport(data []byte) (*sarif.Report, map[string]map[string]string, error) {
	var sarifReport sarif.Report
	if err := json.Unmarshal(data, &sarifReport); err != nil {
		return nil, nil, fmt.Errorf("failed to parse SARIF report: %w", err)
	}

	var messages messageStrings
	if err := json.Unmarshal(data, &messages); err != nil {
		return nil, nil, fmt.Errorf("failed to parse SARIF message strings: %w", err)
	}
	templates := map[string]map[string]string{}
	for _, run := range messages.Runs {
		for _, rule := range run.Tool.Driver.Rules {
			if _, ok := templates[rule.ID]; ok {
				continue
			}
			texts := map[string]string{}
			for id, ms := range rule.MessageStrings {
				texts[id] = ms.Text
			}
			templates[rule.ID] = texts
		}
	}
	return &sarifReport, templates, nil
}

// remove all results with Suppressions property
func removeSuppressedResults(report *sarif.Report) {
	for _, run := range report.Runs {
		var filteredResults []*sarif.Result

		for _, result := range run.Results {
			if len(result.Suppressions) == 0 {
				filteredResults = append(filteredResults, result)
			}
		}

		run.Results = filteredResults
	}
}

// ReadReport loads a SARIF report from inputPath.
func ReadReport(inputPath string, logger hclog.Logger, noSuppressions bool) (*Report, error) {
	jsonFile, err := os.Open(inputPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open SARIF report: %w", err)
	}
	defer jsonFile.Close()

	data, err := io.ReadAll(jsonFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read SARIF report: %w", err)
	}
	return ParseReport(data, logger, noSuppressions)
}

// ParseReport loads a SARIF report from its JSON encoding.
func ParseReport(data []byte, logger hclog.Logger, noSuppressions bool) (*Report, error) {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	sarifReport, templates, err := readSarifReport(data)
	if err != nil {
		return nil, err
	}
	if noSuppressions {
		removeSuppressedResults(sarifReport)
	}

	logger.Debug("SARIF report loaded", "version", sarifReport.Version, "runs", len(sarifReport.Runs))
	return &Report{
		Report:    sarifReport,
		logger:    logger,
		templates: templates,
	}, nil
}

// ExtractToolNameAndVersion function extracts tool name and version from a sarif report
func (r Report) ExtractToolNameAndVersion() (*ToolMetadata, error) {
	if len(r.Runs) == 0 || r.Runs[0].Tool.Driver == nil {
		return nil, errors.New("report has no tool driver")
	}
	driver := r.Runs[0].Tool.Driver
	toolVersion := driver.Version
	if toolVersion == nil {
		toolVersion = driver.SemanticVersion
	}
	return &ToolMetadata{
		Name:    driver.Name,
		Version: toolVersion,
	}, nil
}

// EnrichResultsLevelProperty stores the effective level of every result in
// its properties: the result's own level, then the rule's "problem.severity"
// property, then the rule's default configuration level, then "warning".
func (r Report) EnrichResultsLevelProperty() {
	for _, run := range r.Runs {
		rulesMap := map[string]*sarif.ReportingDescriptor{}
		if run.Tool.Driver != nil {
			for _, rule := range run.Tool.Driver.Rules {
				rulesMap[rule.ID] = rule
			}
		}

		for _, result := range run.Results {
			if result.Properties == nil {
				result.Properties = make(map[string]interface{})
			}
			if result.Properties[levelProperty] != nil {
				continue
			}
			var rule *sarif.ReportingDescriptor
			if result.RuleID != nil {
				rule = rulesMap[*result.RuleID]
			}
			switch {
			case result.Level != nil:
				result.Properties[levelProperty] = *result.Level
			case rule != nil && rule.Properties["problem.severity"] != nil:
				result.Properties[levelProperty] = rule.Properties["problem.severity"]
			case rule != nil && rule.DefaultConfiguration != nil:
				result.Properties[levelProperty] = rule.DefaultConfiguration.Level
			default:
				// SARIF's default level
				result.Properties[levelProperty] = "warning"
			}
		}
	}
}

func resultLevel(result *sarif.Result) string {
	if level, ok := result.Properties[levelProperty].(string); ok {
		return level
	}
	if result.Level != nil {
		return *result.Level
	}
	return "warning"
}

// CollectSeverityInfo counts results per level across all runs. The map
// always carries the error, warning, note, none and total keys.
func (r Report) CollectSeverityInfo() map[string]int {
	severityInfo := map[string]int{
		"error":   0,
		"warning": 0,
		"note":    0,
		"none":    0,
		"total":   0,
	}

	for _, run := range r.Runs {
		for _, result := range run.Results {
			severityInfo[resultLevel(result)]++
			severityInfo["total"]++
		}
	}

	return severityInfo
}

// SortResultsByLevel function sorts sarif results by level
func (r Report) SortResultsByLevel() {
	// order: error, warning, note, none, anything else
	levelOrder := map[string]int{
		"error":   0,
		"warning": 1,
		"note":    2,
		"none":    3,
	}
	rank := func(result *sarif.Result) int {
		if order, ok := levelOrder[resultLevel(result)]; ok {
			return order
		}
		return len(levelOrder)
	}

	for _, run := range r.Runs {
		sort.SliceStable(run.Results, func(i, j int) bool {
			return rank(run.Results[i]) < rank(run.Results[j])
		})
	}
}

// Summaries flattens the results of all runs in report order.
func (r Report) Summaries() []ResultSummary {
	var summaries []ResultSummary
	for _, run := range r.Runs {
		for _, result := range run.Results {
			summary := ResultSummary{
				Level:    resultLevel(result),
				Message:  FormatResultMessage(result, r.templates),
				Location: formatLocation(result),
			}
			if result.RuleID != nil {
				summary.RuleID = *result.RuleID
			}
			summaries = append(summaries, summary)
		}
	}
	return summaries
}

func formatLocation(result *sarif.Result) string {
	if len(result.Locations) == 0 {
		return ""
	}
	physical := result.Locations[0].PhysicalLocation
	if physical == nil || physical.ArtifactLocation == nil || physical.ArtifactLocation.URI == nil {
		return ""
	}
	if physical.Region != nil && physical.Region.StartLine != nil {
		return fmt.Sprintf("%s:%d", *physical.ArtifactLocation.URI, *physical.Region.StartLine)
	}
	return *physical.ArtifactLocation.URI
}
