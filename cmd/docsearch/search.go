package main

import (
	"fmt"

	"github.com/fwojciec/docsearch"
)

// Run executes the search command.
func (c *SearchCmd) Run(deps *Dependencies) error {
	results, err := deps.Searcher.Search(deps.Ctx, c.Query)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", docsearch.ErrorMessage(err))
		return err
	}

	if len(results) == 0 {
		fmt.Fprintln(deps.Stdout, "No matches.")
		return nil
	}

	for _, result := range results {
		location := result.PagePath
		if result.Slug != "" {
			location += "#" + result.Slug
		}
		fmt.Fprintf(deps.Stdout, "%.3f  %s\n", result.Similarity, location)
		if result.Heading != "" {
			fmt.Fprintf(deps.Stdout, "       %s\n", result.Heading)
		}
	}

	return nil
}
