package config

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/gobwas/glob"
)

// ValidationError represents a single validation error
type ValidationError struct {
	Field      string // Field path (e.g., "packages[0].name")
	Message    string
	Suggestion string // Helpful suggestion (optional)
}

// Error returns a formatted error message
func (e *ValidationError) Error() string {
	msg := fmt.Sprintf("validation error at %s: %s", e.Field, e.Message)
	if e.Suggestion != "" {
		msg += fmt.Sprintf(". Suggestion: %s", e.Suggestion)
	}
	return msg
}

// ValidationErrors is a collection of validation errors
type ValidationErrors []ValidationError

// Error returns all validation errors formatted with clear separation
func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return "validation errors"
	}
	if len(e) == 1 {
		return e[0].Error()
	}

	var buf bytes.Buffer
	buf.WriteString(fmt.Sprintf("found %d validation errors:\n", len(e)))
	for i, err := range e {
		buf.WriteString(fmt.Sprintf("  %d. %s\n", i+1, err.Error()))
	}
	return buf.String()
}

var validFormats = []string{"pretty", "text", "json"}

// Validate checks the configuration for values generation cannot work with.
func (c *Config) Validate() error {
	var errs ValidationErrors

	if strings.TrimSpace(c.Reference.Output) == "" {
		errs = append(errs, ValidationError{
			Field:      "reference.output",
			Message:    "output directory is empty",
			Suggestion: "set reference.output, e.g. ./site",
		})
	}

	seen := make(map[string]int)
	for i, p := range c.Packages {
		field := fmt.Sprintf("packages[%d]", i)
		if strings.TrimSpace(p.Name) == "" {
			errs = append(errs, ValidationError{Field: field + ".name", Message: "package name is required"})
		} else if first, ok := seen[strings.ToLower(p.Name)]; ok {
			errs = append(errs, ValidationError{
				Field:   field + ".name",
				Message: fmt.Sprintf("package %q already declared at packages[%d]", p.Name, first),
			})
		} else {
			seen[strings.ToLower(p.Name)] = i
		}

		if strings.TrimSpace(p.Dir) == "" {
			errs = append(errs, ValidationError{Field: field + ".dir", Message: "package directory is required"})
		}

		for j, pattern := range p.Include {
			if _, err := glob.Compile(pattern, '/'); err != nil {
				errs = append(errs, ValidationError{
					Field:   fmt.Sprintf("%s.include[%d]", field, j),
					Message: fmt.Sprintf("invalid pattern %q: %v", pattern, err),
				})
			}
		}
	}

	if c.Server.Port < 0 || c.Server.Port > 65535 {
		errs = append(errs, ValidationError{
			Field:   "server.port",
			Message: fmt.Sprintf("port %d out of range", c.Server.Port),
		})
	}

	if f := strings.ToLower(c.Logging.Format); f != "" && !contains(validFormats, f) {
		errs = append(errs, ValidationError{
			Field:      "logging.format",
			Message:    fmt.Sprintf("unknown format %q", c.Logging.Format),
			Suggestion: "use one of " + strings.Join(validFormats, ", "),
		})
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
