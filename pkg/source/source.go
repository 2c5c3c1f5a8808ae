// Package source supplies the raw documentation nodes of each package to a
// generation run.
package source

import (
	"context"
	"fmt"

	"github.com/simonhull/firebird-suite/heron/pkg/docnode"
)

// PackageRef names a package a source can load.
type PackageRef struct {
	Name string
	// Location is source specific: a directory for FileSource.
	Location string
}

// Input is one decoded doc-node file. Separate inputs of a package are
// flattened separately and then merged.
type Input struct {
	Path  string
	Nodes []docnode.Node
}

// RawPackage is everything loaded for one package.
type RawPackage struct {
	Name         string
	Inputs       []Input
	Descriptions map[string]string
	// Errors are per-file failures; the files that loaded are still usable.
	Errors []error
}

// Forest returns the nodes of every input, in input order.
func (p *RawPackage) Forest() []docnode.Node {
	var forest []docnode.Node
	for _, in := range p.Inputs {
		forest = append(forest, in.Nodes...)
	}
	return forest
}

// Source produces packages for a run. Open lists them; Load fetches one.
// Open returns *UnavailableError when nothing can be produced at all.
type Source interface {
	Open(ctx context.Context) ([]PackageRef, error)
	Load(ctx context.Context, ref PackageRef) (*RawPackage, error)
}

// UnavailableError means the source cannot produce any package: it is
// disabled or its backing data is missing. A run treats it as a degraded
// outcome rather than a failure.
type UnavailableError struct {
	Reason string
	Err    error
}

// Error returns a formatted error message
func (e *UnavailableError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("reference source unavailable: %s: %v", e.Reason, e.Err)
	}
	return "reference source unavailable: " + e.Reason
}

// Unwrap returns the underlying error.
func (e *UnavailableError) Unwrap() error {
	return e.Err
}

// Static serves packages held in memory.
type Static struct {
	Packages []RawPackage
}

// Open implements Source.
func (s *Static) Open(ctx context.Context) ([]PackageRef, error) {
	if len(s.Packages) == 0 {
		return nil, &UnavailableError{Reason: "no packages"}
	}
	refs := make([]PackageRef, len(s.Packages))
	for i, p := range s.Packages {
		refs[i] = PackageRef{Name: p.Name}
	}
	return refs, nil
}

// Load implements Source.
func (s *Static) Load(ctx context.Context, ref PackageRef) (*RawPackage, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	for i := range s.Packages {
		if s.Packages[i].Name == ref.Name {
			p := s.Packages[i]
			return &p, nil
		}
	}
	return nil, fmt.Errorf("package %q not found", ref.Name)
}
