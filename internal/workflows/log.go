package workflows

import (
	"context"
	"fmt"
	"strings"

	"github.com/Storrado98/gastosapp/internal/audit"
)

// LogOptions configures the log workflow.
type LogOptions struct {
	// User keeps only entries for this user. Empty keeps all.
	User string

	// Operations keeps only these operations (comma-separated).
	Operations string

	// Limit is the maximum number of entries to return, keeping the most
	// recent. 0 means no limit.
	Limit int

	// Reverse orders entries from most recent to oldest.
	Reverse bool
}

// LogResult contains the outcome of a log operation.
type LogResult struct {
	Entries []audit.Entry

	// Total is the number of entries in the log before filtering.
	Total int
}

// Log reads and filters the audit log. A missing log yields no entries.
func Log(ctx context.Context, opts LogOptions) (*LogResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	entries, err := audit.ReadEntries()
	if err != nil {
		return nil, fmt.Errorf("reading audit log: %w", err)
	}
	result := &LogResult{Total: len(entries)}

	if opts.User != "" {
		entries = audit.ForUser(entries, opts.User)
	}

	if opts.Operations != "" {
		ops := make(map[string]bool)
		for _, op := range strings.Split(opts.Operations, ",") {
			ops[strings.TrimSpace(op)] = true
		}
		var filtered []audit.Entry
		for _, e := range entries {
			if ops[e.Operation] {
				filtered = append(filtered, e)
			}
		}
		entries = filtered
	}

	if opts.Limit > 0 && len(entries) > opts.Limit {
		entries = entries[len(entries)-opts.Limit:]
	}

	if opts.Reverse {
		for i, j := 0, len(entries)-1; i < j; i, j = i+1, j-1 {
			entries[i], entries[j] = entries[j], entries[i]
		}
	}

	result.Entries = entries
	return result, nil
}
