package main

import (
	"fmt"

	"github.com/fwojciec/docsearch"
)

// Run executes the list command.
func (c *ListCmd) Run(deps *Dependencies) error {
	pages, err := deps.Pages.FindPages(deps.Ctx, docsearch.PageFilter{})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", docsearch.ErrorMessage(err))
		return err
	}

	if len(pages) == 0 {
		fmt.Fprintln(deps.Stdout, "No pages indexed.")
		return nil
	}

	fmt.Fprintln(deps.Stdout, docsearch.FormatPages(pages))
	return nil
}
