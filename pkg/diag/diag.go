// Package diag collects the non-fatal problems found during a generation run.
package diag

import (
	"fmt"
	"strings"
	"sync"

	"github.com/hashicorp/go-multierror"
	"github.com/simonhull/firebird-suite/heron/pkg/logger"
)

// Diagnostic is one contained failure: a skipped node, a dropped page or a
// package that could not be loaded.
type Diagnostic struct {
	Package string `json:"package,omitempty"`
	Err     error  `json:"-"`
	Message string `json:"message"`
}

// Error implements error.
func (d Diagnostic) Error() string {
	if d.Package == "" {
		return d.Message
	}
	return fmt.Sprintf("%s: %s", d.Package, d.Message)
}

// Unwrap returns the underlying error.
func (d Diagnostic) Unwrap() error {
	return d.Err
}

// Collector accumulates diagnostics for one run and logs each one as it
// arrives. The zero value is not usable; call NewCollector.
type Collector struct {
	mu    sync.Mutex
	items []Diagnostic
	log   logger.Logger
}

// NewCollector creates a collector that logs through log.
// A nil logger silences reporting.
func NewCollector(log logger.Logger) *Collector {
	if log == nil {
		log = logger.NewSilentLogger()
	}
	return &Collector{log: log}
}

// Report records err against pkg. A nil err is ignored.
func (c *Collector) Report(pkg string, err error) {
	if err == nil {
		return
	}
	d := Diagnostic{Package: pkg, Err: err, Message: err.Error()}

	c.mu.Lock()
	c.items = append(c.items, d)
	c.mu.Unlock()

	c.log.Warn("Skipped", logger.F("package", pkg), logger.F("reason", d.Message))
}

// ReportAll records every error in errs against pkg.
func (c *Collector) ReportAll(pkg string, errs []error) {
	for _, err := range errs {
		c.Report(pkg, err)
	}
}

// Len returns the number of diagnostics recorded.
func (c *Collector) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

// Diagnostics returns a copy of the recorded diagnostics in report order.
func (c *Collector) Diagnostics() []Diagnostic {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]Diagnostic(nil), c.items...)
}

// Err folds all diagnostics into one error, or nil when there are none.
func (c *Collector) Err() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	var result *multierror.Error
	for _, d := range c.items {
		result = multierror.Append(result, d)
	}
	if result == nil {
		return nil
	}
	result.ErrorFormat = listFormat
	return result
}

func listFormat(errs []error) string {
	if len(errs) == 1 {
		return "1 diagnostic: " + errs[0].Error()
	}
	lines := make([]string, len(errs))
	for i, err := range errs {
		lines[i] = "  - " + err.Error()
	}
	return fmt.Sprintf("%d diagnostics:\n%s", len(errs), strings.Join(lines, "\n"))
}
