package report

import (
	"github.com/hashicorp/go-hclog"

	"github.com/scan-io-git/sarif-reporter/internal/bugs"
	"github.com/scan-io-git/sarif-reporter/internal/source"
)

// SourceFinder locates source files under the configured source roots.
type SourceFinder interface {
	Find(ref source.Ref) (*source.File, error)
}

// Logical location kinds.
const (
	KindType     = "type"
	KindFunction = "function"
	KindMember   = "member"
	KindVariable = "variable"
)

// Resolver turns bug annotations and stack frames into SARIF locations,
// registering every source root it uses in the base registry.
type Resolver struct {
	finder SourceFinder
	bases  *BaseRegistry
	logger hclog.Logger
}

// NewResolver returns a resolver. A nil finder disables physical locations.
func NewResolver(finder SourceFinder, bases *BaseRegistry, logger hclog.Logger) *Resolver {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	if bases == nil {
		bases = NewBaseRegistry()
	}
	return &Resolver{finder: finder, bases: bases, logger: logger}
}

// Bases returns the registry the resolver writes to.
func (r *Resolver) Bases() *BaseRegistry {
	return r.bases
}

// Location builds the location of a bug. It returns nil when the bug has no
// source line or no annotation that can serve as a logical location; the
// physical part is left out when the source file cannot be found.
func (r *Resolver) Location(bug *bugs.Instance) *Location {
	sourceLine, ok := bug.PrimarySourceLine()
	if !ok {
		return nil
	}
	logical := r.logicalLocation(bug, sourceLine)
	if logical == nil {
		return nil
	}

	loc := &Location{LogicalLocations: []*LogicalLocation{logical}}
	if physical := r.physicalLocation(sourceLine); physical != nil {
		loc.PhysicalLocation = physical
	}
	return loc
}

func (r *Resolver) physicalLocation(sourceLine *bugs.SourceLineAnnotation) *PhysicalLocation {
	artifact := r.artifactLocation(source.Ref{
		PackageName: sourceLine.PackageName(),
		FileName:    sourceLine.SourceFile,
	})
	if artifact == nil {
		return nil
	}
	physical := &PhysicalLocation{ArtifactLocation: artifact}
	if sourceLine.StartLine > 0 && sourceLine.EndLine > 0 {
		physical.Region = &Region{StartLine: sourceLine.StartLine, EndLine: sourceLine.EndLine}
	}
	return physical
}

func (r *Resolver) artifactLocation(ref source.Ref) *ArtifactLocation {
	if r.finder == nil {
		return nil
	}
	file, err := r.finder.Find(ref)
	if err != nil {
		r.logger.Debug("skipping physical location", "file", ref.FileName, "package", ref.PackageName, "error", err)
		return nil
	}
	return &ArtifactLocation{
		URI:       file.RelativeURI(),
		URIBaseID: r.bases.ID(file.BaseURI()),
	}
}

func (r *Resolver) logicalLocation(bug *bugs.Instance, sourceLine *bugs.SourceLineAnnotation) *LogicalLocation {
	primaryClass := bug.PrimaryClass()
	for _, a := range bug.Annotations {
		var kind string
		switch a.(type) {
		case *bugs.ClassAnnotation:
			kind = KindType
		case *bugs.MethodAnnotation:
			kind = KindFunction
		case *bugs.FieldAnnotation:
			kind = KindMember
		case *bugs.LocalVariableAnnotation:
			kind = KindVariable
		default:
			continue
		}
		return &LogicalLocation{
			Name:               a.Format("givenClass", primaryClass),
			Kind:               kind,
			FullyQualifiedName: sourceLine.Format("full", primaryClass),
		}
	}
	return nil
}

// StackLocation builds the location of one stack frame.
func (r *Resolver) StackLocation(frame bugs.StackFrame) *Location {
	loc := &Location{
		LogicalLocations: []*LogicalLocation{{
			Name: frame.MethodName,
			Kind: KindFunction,
			Properties: map[string]interface{}{
				"line-number": frame.LineNumber,
			},
		}},
	}
	if frame.FileName == "" {
		return loc
	}
	artifact := r.artifactLocation(source.Ref{
		PackageName: bugs.PackageName(frame.DeclaringClass),
		FileName:    frame.FileName,
	})
	if artifact != nil {
		loc.PhysicalLocation = &PhysicalLocation{ArtifactLocation: artifact}
		if frame.LineNumber > 0 {
			loc.PhysicalLocation.Region = &Region{StartLine: frame.LineNumber}
		}
	}
	return loc
}
