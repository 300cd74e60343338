package source

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/hashicorp/go-hclog"
)

// ErrNotFound is returned when no source root contains the requested file.
var ErrNotFound = errors.New("source file not found")

// Ref identifies a source file by its package and file name. FileName may
// also be an absolute path, as recorded in Go runtime frames.
type Ref struct {
	PackageName string
	FileName    string
}

// Path returns the root-relative path of the file: the package with dots
// replaced by separators, followed by the file name.
func (r Ref) Path() string {
	if r.PackageName == "" {
		return filepath.FromSlash(r.FileName)
	}
	return filepath.Join(strings.ReplaceAll(r.PackageName, ".", string(filepath.Separator)), r.FileName)
}

// File is a source file located under one of the finder's roots.
type File struct {
	Base string
	Path string
}

// BaseURI returns the directory URI of the root the file was found under.
// It always ends with a slash.
func (f *File) BaseURI() string {
	return fileURI(f.Base, true)
}

// URI returns the absolute file URI of the source file.
func (f *File) URI() string {
	return fileURI(f.Path, false)
}

// RelativeURI returns the file URI relative to BaseURI.
func (f *File) RelativeURI() string {
	rel, err := filepath.Rel(f.Base, f.Path)
	if err != nil {
		return f.URI()
	}
	return (&url.URL{Path: filepath.ToSlash(rel)}).String()
}

func fileURI(path string, dir bool) string {
	p := filepath.ToSlash(path)
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	if dir && !strings.HasSuffix(p, "/") {
		p += "/"
	}
	return (&url.URL{Scheme: "file", Path: p}).String()
}

// Finder locates source files under an ordered list of source roots.
type Finder struct {
	roots  []string
	logger hclog.Logger
}

// NewFinder builds a finder over dirs. Roots are made absolute and
// duplicates are dropped; the configured order is kept.
func NewFinder(dirs []string, logger hclog.Logger) *Finder {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	f := &Finder{logger: logger}
	seen := map[string]struct{}{}
	for _, dir := range dirs {
		if strings.TrimSpace(dir) == "" {
			continue
		}
		root, err := filepath.Abs(dir)
		if err != nil {
			root = filepath.Clean(dir)
		}
		if _, ok := seen[root]; ok {
			continue
		}
		seen[root] = struct{}{}
		f.roots = append(f.roots, root)
	}
	return f
}

// Roots returns the absolute source roots in search order.
func (f *Finder) Roots() []string {
	return append([]string(nil), f.roots...)
}

// Find returns the first root, in configured order, that contains the file.
// For absolute file names the most specific root containing the path wins.
func (f *Finder) Find(ref Ref) (*File, error) {
	if filepath.IsAbs(ref.FileName) {
		return f.findAbsolute(filepath.Clean(ref.FileName))
	}

	rel := ref.Path()
	for _, root := range f.roots {
		candidate := filepath.Join(root, rel)
		if !PathWithin(candidate, root) {
			continue
		}
		if isRegularFile(candidate) {
			return &File{Base: root, Path: candidate}, nil
		}
	}
	f.logger.Debug("source file not found", "path", rel, "roots", len(f.roots))
	return nil, fmt.Errorf("%w: %s", ErrNotFound, filepath.ToSlash(rel))
}

func (f *Finder) findAbsolute(path string) (*File, error) {
	var best string
	for _, root := range f.roots {
		if PathWithin(path, root) && len(root) > len(best) {
			best = root
		}
	}
	if best == "" || !isRegularFile(path) {
		f.logger.Debug("source file not found", "path", path, "roots", len(f.roots))
		return nil, fmt.Errorf("%w: %s", ErrNotFound, filepath.ToSlash(path))
	}
	return &File{Base: best, Path: path}, nil
}

func isRegularFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

// PathWithin checks if a path is within another path (root).
// Both are resolved to absolute paths first when possible.
// Returns true if path is within root, or if root is empty.
func PathWithin(path, root string) bool {
	if root == "" {
		return true
	}
	cleanPath, err1 := filepath.Abs(path)
	cleanRoot, err2 := filepath.Abs(root)
	if err1 != nil || err2 != nil {
		cleanPath = filepath.Clean(path)
		cleanRoot = filepath.Clean(root)
	}
	if cleanPath == cleanRoot {
		return true
	}
	rootWithSep := strings.TrimSuffix(cleanRoot, string(filepath.Separator)) + string(filepath.Separator)
	return strings.HasPrefix(cleanPath, rootWithSep)
}
