package main

import (
	"fmt"

	"github.com/fwojciec/docsearch/index"
)

// Run executes the index command.
func (c *IndexCmd) Run(deps *Dependencies) error {
	progress := func(event index.ProgressEvent) {
		switch event.Type {
		case index.ProgressStarted:
			fmt.Fprintf(deps.Stdout, "  Found %d documents\n", event.Total)
		case index.ProgressFailed:
			fmt.Fprintf(deps.Stderr, "  fail %s: %v\n", event.Path, event.Error)
		case index.ProgressFinished:
			// Summary printed after the run completes
		}
	}

	result, err := deps.Indexer.IndexDir(deps.Ctx, c.Dir, c.Refresh, progress)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error indexing: %v\n", err)
		return err
	}

	fmt.Fprintf(deps.Stdout, "  Indexed %d, relinked %d, skipped %d, failed %d of %d documents\n",
		result.Indexed, result.Relinked, result.Skipped, result.Failed, result.Discovered)

	// Failed documents keep a nil checksum and are retried automatically
	// on the next run.
	return nil
}
