package mpq

import (
	"context"
	"fmt"

	"github.com/jmgilman/go/mpq/internal/logging"
)

// Warning records a recoverable failure for a single entry or host file.
type Warning struct {
	// Name is the archive entry name or host path that failed.
	Name string
	// Err is the cause. It carries a code with warning severity.
	Err error
}

// String formats the warning as "name: cause".
func (w Warning) String() string {
	return fmt.Sprintf("%s: %v", w.Name, w.Err)
}

// ExtractReport summarizes an extraction.
type ExtractReport struct {
	// Extracted holds the normalized paths written under the output root.
	Extracted []string
	// Skipped counts entries that did not match the filter.
	Skipped int
	// Warnings holds entries that matched but could not be extracted.
	Warnings []Warning
}

// PackReport summarizes archive creation.
type PackReport struct {
	// Added holds the archive names of every entry added.
	Added []string
	// Warnings holds files or directories that could not be added.
	Warnings []Warning
}

// collector logs recoverable failures and accumulates them.
type collector struct {
	logger   *logging.Logger
	warnings []Warning
}

func (c *collector) add(ctx context.Context, name string, err error) {
	logging.LogEntryWarning(ctx, c.logger, name, err)
	c.warnings = append(c.warnings, Warning{Name: name, Err: err})
}
