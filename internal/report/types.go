package report

import (
	"bytes"
	"encoding/json"

	"github.com/google/uuid"
)

const (
	Version = "2.1.0"
	Schema  = "https://raw.githubusercontent.com/oasis-tcs/sarif-spec/master/Schemata/sarif-schema-2.1.0.json"
)

// The types below model the subset of SARIF 2.1.0 the reporter emits. Field
// order is the serialization order.

type Report struct {
	Version string `json:"version"`
	Schema  string `json:"$schema"`
	Runs    []*Run `json:"runs"`
}

type Run struct {
	Tool               Tool          `json:"tool"`
	Invocations        []*Invocation `json:"invocations"`
	Results            []*Result     `json:"results"`
	OriginalURIBaseIDs *BaseRegistry `json:"originalUriBaseIds"`
}

type Tool struct {
	Driver     *Driver          `json:"driver"`
	Extensions []*ToolComponent `json:"extensions"`
}

type Driver struct {
	Name     string                 `json:"name"`
	Version  string                 `json:"version,omitempty"`
	Language string                 `json:"language,omitempty"`
	Rules    []*ReportingDescriptor `json:"rules"`
}

type ToolComponent struct {
	Name             string                    `json:"name"`
	Version          string                    `json:"version,omitempty"`
	ShortDescription *MultiformatMessageString `json:"shortDescription,omitempty"`
	InformationURI   string                    `json:"informationUri,omitempty"`
	Organization     string                    `json:"organization,omitempty"`
}

type ReportingDescriptor struct {
	ID               string                               `json:"id"`
	ShortDescription *MultiformatMessageString            `json:"shortDescription,omitempty"`
	FullDescription  *MultiformatMessageString            `json:"fullDescription,omitempty"`
	MessageStrings   map[string]*MultiformatMessageString `json:"messageStrings,omitempty"`
	HelpURI          string                               `json:"helpUri,omitempty"`
	Properties       *RuleProperties                      `json:"properties,omitempty"`
}

type RuleProperties struct {
	Tags []string `json:"tags,omitempty"`
}

type MultiformatMessageString struct {
	Text string `json:"text"`
}

type Message struct {
	Text      string   `json:"text,omitempty"`
	ID        string   `json:"id,omitempty"`
	Arguments []string `json:"arguments,omitempty"`
}

type Result struct {
	RuleID    string      `json:"ruleId"`
	RuleIndex int         `json:"ruleIndex"`
	Level     string      `json:"level"`
	Message   *Message    `json:"message"`
	Locations []*Location `json:"locations,omitempty"`
}

type Location struct {
	PhysicalLocation *PhysicalLocation `json:"physicalLocation,omitempty"`
	LogicalLocations []*LogicalLocation `json:"logicalLocations,omitempty"`
}

type PhysicalLocation struct {
	ArtifactLocation *ArtifactLocation `json:"artifactLocation"`
	Region           *Region           `json:"region,omitempty"`
}

type ArtifactLocation struct {
	URI       string `json:"uri"`
	URIBaseID string `json:"uriBaseId,omitempty"`
}

type Region struct {
	StartLine int `json:"startLine"`
	EndLine   int `json:"endLine,omitempty"`
}

type LogicalLocation struct {
	Name               string                 `json:"name,omitempty"`
	Kind               string                 `json:"kind,omitempty"`
	FullyQualifiedName string                 `json:"fullyQualifiedName,omitempty"`
	Properties         map[string]interface{} `json:"properties,omitempty"`
}

type Invocation struct {
	ExitCode                       int             `json:"exitCode"`
	ExitSignalName                 string          `json:"exitSignalName"`
	ExecutionSuccessful            bool            `json:"executionSuccessful"`
	ToolExecutionNotifications     []*Notification `json:"toolExecutionNotifications"`
	ToolConfigurationNotifications []*Notification `json:"toolConfigurationNotifications"`
}

type Notification struct {
	Descriptor *ReportingDescriptorReference `json:"descriptor"`
	Message    *Message                      `json:"message"`
	Level      string                        `json:"level"`
	Exception  *Exception                    `json:"exception,omitempty"`
}

type ReportingDescriptorReference struct {
	ID string `json:"id"`
}

type Exception struct {
	Kind            string       `json:"kind"`
	Message         string       `json:"message"`
	Stack           *Stack       `json:"stack"`
	InnerExceptions []*Exception `json:"innerExceptions,omitempty"`
}

type Stack struct {
	Message *Message      `json:"message"`
	Frames  []*StackFrame `json:"frames"`
}

type StackFrame struct {
	Location *Location `json:"location,omitempty"`
}

// BaseRegistry assigns opaque ids to source root URIs. Ids are derived from
// the URI so they stay stable across runs, and the registry remembers the
// order in which bases were first used.
type BaseRegistry struct {
	ids   map[string]string
	order []string
}

func NewBaseRegistry() *BaseRegistry {
	return &BaseRegistry{ids: map[string]string{}}
}

// ID returns the id of baseURI, registering it on first use.
func (r *BaseRegistry) ID(baseURI string) string {
	if id, ok := r.ids[baseURI]; ok {
		return id
	}
	id := uuid.NewSHA1(uuid.NameSpaceURL, []byte(baseURI)).String()
	r.ids[baseURI] = id
	r.order = append(r.order, baseURI)
	return id
}

// Bases returns the registered base URIs in first-use order.
func (r *BaseRegistry) Bases() []string {
	return append([]string(nil), r.order...)
}

func (r *BaseRegistry) Len() int {
	return len(r.order)
}

// MarshalJSON writes {"<id>": {"uri": "<base>"}, ...} in first-use order.
func (r *BaseRegistry) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, base := range r.order {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(r.ids[base])
		if err != nil {
			return nil, err
		}
		value, err := json.Marshal(ArtifactLocation{URI: base})
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
