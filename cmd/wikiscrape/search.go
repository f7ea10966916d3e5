package main

import (
	"fmt"

	"github.com/fwojciec/wikiscrape"
)

// Run executes the search command.
func (c *SearchCmd) Run(deps *Dependencies) error {
	urls, err := deps.Searcher.Search(deps.Ctx, c.Query, c.Number)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", wikiscrape.ErrorMessage(err))
		return err
	}

	for i, u := range urls {
		fmt.Fprintf(deps.Stdout, "%d. %s\n", i+1, u)
	}
	return nil
}
