// Package report translates a bug collection into a SARIF 2.1.0 document.
package report

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"

	"github.com/hashicorp/go-hclog"

	"github.com/scan-io-git/sarif-reporter/internal/bugs"
)

const DriverName = "SpotBugs"

// Options configures a Reporter.
type Options struct {
	// ToolVersion is used when the collection does not name the analyzer version.
	ToolVersion string
	// Language is the report language, e.g. "en".
	Language string
	// Pretty enables indented output.
	Pretty bool
	Logger hclog.Logger
}

// Reporter writes one SARIF document for a bug collection.
type Reporter struct {
	collection *bugs.Collection
	finder     SourceFinder
	opts       Options
	logger     hclog.Logger
}

// NewReporter returns a reporter over collection. finder may be nil, in which
// case no physical locations are emitted.
func NewReporter(collection *bugs.Collection, finder SourceFinder, opts Options) *Reporter {
	logger := opts.Logger
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &Reporter{collection: collection, finder: finder, opts: opts, logger: logger}
}

// Build assembles the complete document in memory.
func (r *Reporter) Build() (*Report, error) {
	resolver := NewResolver(r.finder, NewBaseRegistry(), r.logger)
	analyser, err := Analyse(r.collection, resolver, r.logger)
	if err != nil {
		return nil, err
	}
	for _, result := range analyser.Results() {
		r.logger.Trace("result", "rule", result.RuleID, "level", result.Level, "message", analyser.RenderMessage(result))
	}

	run := &Run{
		Tool:        r.tool(analyser.Rules()),
		Invocations: []*Invocation{r.invocation(resolver)},
		Results:     analyser.Results(),
		// The registry is serialized last so it includes bases used by stack frames.
		OriginalURIBaseIDs: resolver.Bases(),
	}
	return &Report{Version: Version, Schema: Schema, Runs: []*Run{run}}, nil
}

func (r *Reporter) tool(rules []*ReportingDescriptor) Tool {
	version := r.collection.AnalyzerVersion
	if version == "" {
		version = r.opts.ToolVersion
	}
	extensions := make([]*ToolComponent, 0, len(r.collection.Plugins))
	for _, p := range r.collection.Plugins {
		ext := &ToolComponent{
			Name:           p.ID,
			Version:        p.Version,
			InformationURI: p.Website,
			Organization:   p.Provider,
		}
		if p.ShortDescription != "" {
			ext.ShortDescription = &MultiformatMessageString{Text: p.ShortDescription}
		}
		extensions = append(extensions, ext)
	}
	return Tool{
		Driver: &Driver{
			Name:     DriverName,
			Version:  version,
			Language: r.opts.Language,
			Rules:    rules,
		},
		Extensions: extensions,
	}
}

func (r *Reporter) invocation(resolver *Resolver) *Invocation {
	c := r.collection
	code := ExitCode(len(c.Errors), len(c.MissingClasses), len(c.Bugs))
	return &Invocation{
		ExitCode:                       code,
		ExitSignalName:                 SignalName(code),
		ExecutionSuccessful:            code == 0,
		ToolExecutionNotifications:     executionNotifications(c.Errors, resolver),
		ToolConfigurationNotifications: configurationNotifications(c.MissingClasses),
	}
}

// Write builds the document and encodes it to w through a buffer.
func (r *Reporter) Write(w io.Writer) (err error) {
	bw := bufio.NewWriter(w)
	defer func() {
		if ferr := bw.Flush(); ferr != nil && err == nil {
			err = fmt.Errorf("failed to flush the report: %w", ferr)
		}
	}()

	doc, err := r.Build()
	if err != nil {
		return err
	}
	enc := json.NewEncoder(bw)
	enc.SetEscapeHTML(false)
	if r.opts.Pretty {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("failed to encode the report: %w", err)
	}
	return nil
}

// Finish opens the sink, writes the report and closes the sink on every
// path. Failures are logged and returned.
func (r *Reporter) Finish(open func() (io.WriteCloser, error)) (err error) {
	defer func() {
		if err != nil {
			r.logger.Error("failed to generate the SARIF report", "error", err)
		}
	}()

	sink, err := open()
	if err != nil {
		return fmt.Errorf("failed to open the report output: %w", err)
	}
	defer func() {
		if cerr := sink.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close the report output: %w", cerr)
		}
	}()

	return r.Write(sink)
}
