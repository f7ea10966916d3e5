package main

import (
	"fmt"

	"github.com/fwojciec/wikiscrape"
	"github.com/mattn/go-runewidth"
)

// titleWidth is the number of terminal columns the title column takes.
const titleWidth = 40

// Run executes the list command.
func (c *ListCmd) Run(deps *Dependencies) error {
	filter := wikiscrape.ArticleFilter{Limit: c.Limit, Offset: c.Offset}
	if c.Title != "" {
		filter.Title = &c.Title
	}

	articles, err := deps.Articles.FindArticles(deps.Ctx, filter)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", wikiscrape.ErrorMessage(err))
		return err
	}

	if len(articles) == 0 {
		fmt.Fprintln(deps.Stdout, "No articles found. Use 'wikiscrape scrape --db' to store some.")
		return nil
	}

	for _, a := range articles {
		title := runewidth.FillRight(runewidth.Truncate(a.Title, titleWidth, "…"), titleWidth)
		fmt.Fprintf(deps.Stdout, "%s  %s  %s  %s\n", a.FetchedAt.Format("2006-01-02"), title, a.URL, a.ID)
	}

	return nil
}
