package main

import (
	"fmt"
	"net/http"

	dochttp "github.com/fwojciec/docsearch/http"
)

// Run executes the serve command.
func (c *ServeCmd) Run(deps *Dependencies) error {
	server := dochttp.NewServer(deps.Searcher, deps.Logger)

	fmt.Fprintf(deps.Stdout, "Serving search API on %s\n", c.Addr)

	httpServer := &http.Server{
		Addr:    c.Addr,
		Handler: server,
	}
	return httpServer.ListenAndServe()
}
