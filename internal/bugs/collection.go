package bugs

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/hashicorp/go-hclog"
	"github.com/pkg/errors"
)

// ErrUnknownPattern marks a bug whose type has no pattern in the collection.
var ErrUnknownPattern = errors.New("unknown bug pattern")

// Collection is the complete output of one analysis run.
//
// On disk it is a JSON document:
//
//	{
//	  "version": "4.8.3",
//	  "patterns": [{"type": "NP_NULL", "shortDescription": "...", "longDescription": "Null in {1}",
//	                "detailText": "...", "category": "CORRECTNESS", "helpUrl": "https://..."}],
//	  "bugs": [{"type": "NP_NULL", "rank": 3, "annotations": [{"kind": "class", "className": "a.B"}, ...]}],
//	  "errors": [{"sequence": 1, "message": "...", "cause": {"kind": "...", "message": "...", "stackTrace": [...]}}],
//	  "missingClasses": ["a/Missing"],
//	  "plugins": [{"id": "com.example.plugin", "version": "1.0"}]
//	}
//
// Annotation kinds are class, method, field, localVariable, int, string and sourceLine.
type Collection struct {
	AnalyzerVersion string
	Patterns        []*Pattern
	Bugs            []*Instance
	Errors          []AnalysisError
	MissingClasses  []string
	Plugins         []Plugin

	patterns     map[string]*Pattern
	missing      map[string]bool
	nextSequence int
}

// NewCollection returns an empty collection.
func NewCollection() *Collection {
	return &Collection{patterns: map[string]*Pattern{}, missing: map[string]bool{}}
}

// AddPattern registers a pattern. A later pattern with the same type replaces
// the earlier one.
func (c *Collection) AddPattern(p *Pattern) {
	if _, ok := c.patterns[p.Type]; !ok {
		c.Patterns = append(c.Patterns, p)
	} else {
		for i, existing := range c.Patterns {
			if existing.Type == p.Type {
				c.Patterns[i] = p
			}
		}
	}
	c.patterns[p.Type] = p
}

// LookupPattern returns the pattern registered for a bug type.
func (c *Collection) LookupPattern(bugType string) (*Pattern, bool) {
	p, ok := c.patterns[bugType]
	return p, ok
}

// AddBug links the bug to its pattern and appends it. Bugs with an unknown
// type are not added; the failure is queued as an analysis error instead.
func (c *Collection) AddBug(b *Instance) bool {
	p, ok := c.LookupPattern(b.Type)
	if !ok {
		c.LogError(fmt.Sprintf("Cannot report bug of type %s", b.Type),
			errors.Wrapf(ErrUnknownPattern, "bug type %q", b.Type))
		return false
	}
	b.Pattern = p
	c.Bugs = append(c.Bugs, b)
	return true
}

// LogError queues an analysis error with the next free sequence number.
func (c *Collection) LogError(message string, cause error) {
	c.Errors = append(c.Errors, AnalysisError{
		Sequence: c.nextSequence,
		Message:  message,
		Cause:    FromError(cause),
	})
	c.nextSequence++
}

// addQueuedError appends a decoded error. Sequence numbers stay strictly
// increasing: a missing or already used sequence gets the next free one, and
// reassigned reports that it did.
func (c *Collection) addQueuedError(e AnalysisError, hasSequence bool) (reassigned bool) {
	if !hasSequence || e.Sequence < c.nextSequence {
		e.Sequence = c.nextSequence
		reassigned = hasSequence
	}
	c.Errors = append(c.Errors, e)
	c.nextSequence = e.Sequence + 1
	return reassigned
}

// AddMissingClass records a class that could not be found during analysis.
// MissingClasses keeps insertion order; SortMissingClasses orders it.
func (c *Collection) AddMissingClass(className string) {
	if c.missing == nil {
		c.missing = map[string]bool{}
	}
	name := DottedClassName(className)
	if c.missing[name] {
		return
	}
	c.missing[name] = true
	c.MissingClasses = append(c.MissingClasses, name)
}

// SortMissingClasses sorts the recorded missing classes by name.
func (c *Collection) SortMissingClasses() {
	sort.Strings(c.MissingClasses)
}

type collectionJSON struct {
	Version        string          `json:"version"`
	Patterns       []*Pattern      `json:"patterns"`
	Bugs           []instanceJSON  `json:"bugs"`
	Errors         []errorJSON     `json:"errors"`
	MissingClasses []string        `json:"missingClasses"`
	Plugins        []Plugin        `json:"plugins"`
}

type errorJSON struct {
	Sequence *int       `json:"sequence"`
	Message  string     `json:"message"`
	Cause    *Throwable `json:"cause"`
}

type instanceJSON struct {
	Type        string           `json:"type"`
	Rank        int              `json:"rank"`
	Annotations []annotationJSON `json:"annotations"`
}

type annotationJSON struct {
	Kind        string                `json:"kind"`
	ClassName   string                `json:"className"`
	SourceFile  string                `json:"sourceFile"`
	SourceLines *SourceLineAnnotation `json:"sourceLines"`
	MethodName  string                `json:"methodName"`
	Parameters  []string              `json:"parameters"`
	ReturnType  string                `json:"returnType"`
	FieldName   string                `json:"fieldName"`
	FieldType   string                `json:"fieldType"`
	IsStatic    bool                  `json:"isStatic"`
	Name        string                `json:"name"`
	Register    int                   `json:"register"`
	PC          int                   `json:"pc"`
	Value       json.RawMessage       `json:"value"`
	StartLine   int                   `json:"startLine"`
	EndLine     int                   `json:"endLine"`
}

// nestedLines completes the source lines held by a class, method or field
// annotation with the owner's class and source file.
func nestedLines(sl *SourceLineAnnotation, className, sourceFile string) *SourceLineAnnotation {
	if sl == nil {
		return nil
	}
	sl.ClassName = DottedClassName(sl.ClassName)
	if sl.ClassName == "" {
		sl.ClassName = className
	}
	if sl.SourceFile == "" {
		sl.SourceFile = sourceFile
	}
	if sl.SourceFile == "" {
		sl.SourceFile = UnknownSourceLine(sl.ClassName, "").SourceFile
	}
	return sl
}

func (a annotationJSON) annotation() (Annotation, error) {
	className := DottedClassName(a.ClassName)
	switch a.Kind {
	case "class":
		return &ClassAnnotation{ClassName: className, SourceFile: a.SourceFile, SourceLines: nestedLines(a.SourceLines, className, a.SourceFile)}, nil
	case "method":
		return &MethodAnnotation{
			ClassName:   className,
			MethodName:  a.MethodName,
			Parameters:  a.Parameters,
			ReturnType:  a.ReturnType,
			IsStatic:    a.IsStatic,
			SourceLines: nestedLines(a.SourceLines, className, a.SourceFile),
		}, nil
	case "field":
		return &FieldAnnotation{
			ClassName:   className,
			FieldName:   a.FieldName,
			FieldType:   a.FieldType,
			IsStatic:    a.IsStatic,
			SourceLines: nestedLines(a.SourceLines, className, a.SourceFile),
		}, nil
	case "localVariable":
		return &LocalVariableAnnotation{Name: a.Name, Register: a.Register, PC: a.PC}, nil
	case "int":
		ann := &IntAnnotation{}
		if err := json.Unmarshal(a.Value, &ann.Value); err != nil {
			return nil, fmt.Errorf("int annotation value: %w", err)
		}
		return ann, nil
	case "string":
		ann := &StringAnnotation{}
		if err := json.Unmarshal(a.Value, &ann.Value); err != nil {
			return nil, fmt.Errorf("string annotation value: %w", err)
		}
		return ann, nil
	case "sourceLine":
		return &SourceLineAnnotation{
			ClassName:  className,
			SourceFile: a.SourceFile,
			StartLine:  a.StartLine,
			EndLine:    a.EndLine,
		}, nil
	default:
		return nil, fmt.Errorf("unsupported annotation kind %q", a.Kind)
	}
}

// ReadCollection decodes a bug collection from r.
func ReadCollection(r io.Reader, logger hclog.Logger) (*Collection, error) {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	var raw collectionJSON
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("failed to decode bug collection: %w", err)
	}

	c := NewCollection()
	c.AnalyzerVersion = raw.Version
	c.Plugins = raw.Plugins
	for _, p := range raw.Patterns {
		if p == nil || p.Type == "" {
			return nil, errors.New("bug pattern without a type")
		}
		c.AddPattern(p)
	}
	for i, e := range raw.Errors {
		queued := AnalysisError{Message: e.Message, Cause: e.Cause}
		if e.Sequence != nil {
			queued.Sequence = *e.Sequence
		}
		if c.addQueuedError(queued, e.Sequence != nil) {
			logger.Warn("reassigned duplicate error sequence",
				"index", i, "sequence", queued.Sequence, "assigned", c.nextSequence-1)
		}
	}
	for _, name := range raw.MissingClasses {
		c.AddMissingClass(name)
	}
	c.SortMissingClasses()
	for i, b := range raw.Bugs {
		bug := &Instance{Type: b.Type, Rank: b.Rank}
		for j, a := range b.Annotations {
			ann, err := a.annotation()
			if err != nil {
				return nil, fmt.Errorf("bug %d annotation %d: %w", i, j, err)
			}
			bug.Annotations = append(bug.Annotations, ann)
		}
		if !c.AddBug(bug) {
			logger.Warn("skipping bug with unknown pattern", "index", i, "type", b.Type)
		}
	}

	logger.Debug("bug collection loaded",
		"patterns", len(c.Patterns),
		"bugs", len(c.Bugs),
		"errors", len(c.Errors),
		"missing_classes", len(c.MissingClasses))
	return c, nil
}

// LoadCollection reads a bug collection file.
func LoadCollection(path string, logger hclog.Logger) (*Collection, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open bug collection %q: %w", path, err)
	}
	defer f.Close()

	return ReadCollection(f, logger)
}
