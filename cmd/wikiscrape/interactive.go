package main

import (
	"bufio"
	"fmt"
	"strconv"
	"strings"
)

// maxInteractiveResults caps the result count asked for interactively.
const maxInteractiveResults = 20

// interactive asks on stdin for URLs or a keyword to search.
func (c *ScrapeCmd) interactive(deps *Dependencies) ([]string, string, error) {
	in := bufio.NewScanner(deps.Stdin)
	readLine := func() string {
		if !in.Scan() {
			return ""
		}
		return strings.TrimSpace(in.Text())
	}

	fmt.Fprintln(deps.Stdout, "No source given. Choose one:")
	fmt.Fprintln(deps.Stdout, "  1. Enter URLs")
	fmt.Fprintln(deps.Stdout, "  2. Search by keyword")
	fmt.Fprint(deps.Stdout, "Choice (1-2): ")

	switch readLine() {
	case "1":
		fmt.Fprintln(deps.Stdout, "Enter one URL per line, end with Ctrl+D:")
		var urls []string
		for in.Scan() {
			if u := strings.TrimSpace(in.Text()); u != "" {
				urls = append(urls, u)
				fmt.Fprintf(deps.Stdout, "  [%d] added %s\n", len(urls), u)
			}
		}
		return urls, "", in.Err()

	case "2":
		fmt.Fprint(deps.Stdout, "Keyword: ")
		keyword := readLine()
		if keyword == "" {
			return nil, "", nil
		}

		fmt.Fprintf(deps.Stdout, "Number of results (default %d, max %d): ", c.Number, maxInteractiveResults)
		n := c.Number
		if answer := readLine(); answer != "" {
			if v, err := strconv.Atoi(answer); err == nil && v > 0 {
				n = v
			}
		}
		n = min(n, maxInteractiveResults)

		urls, err := search(deps, keyword, n)
		return urls, keyword, err

	default:
		fmt.Fprintln(deps.Stdout, "Invalid choice")
		return nil, "", nil
	}
}
