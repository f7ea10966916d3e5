package fs

import (
	"fmt"
	"strings"
	"time"

	"github.com/fwojciec/wikiscrape"
)

// DateFormat is how dates appear in generated documents.
const DateFormat = "02/01/2006 à 15:04:05"

const unavailable = "*Résumé non disponible*"

// FormatArticle renders an article as a Markdown document stamped with at.
func FormatArticle(article *wikiscrape.Article, at time.Time) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", article.Title)
	fmt.Fprintf(&b, "**Source:** [Wikipedia](%s)  \n", article.URL)
	fmt.Fprintf(&b, "**Date:** %s  \n\n", at.Format(DateFormat))

	b.WriteString("## Résumé\n\n")
	if article.Summary != "" {
		b.WriteString(article.Summary)
		b.WriteString("\n\n")
	} else {
		b.WriteString(unavailable + "\n\n")
	}

	if len(article.Sections) > 0 {
		b.WriteString("## Sections\n\n")
		for _, section := range article.Sections {
			fmt.Fprintf(&b, "- %s\n", section)
		}
		b.WriteString("\n")
	}

	return b.String()
}

// FormatSummaryText renders the plain-text summary file of an article.
func FormatSummaryText(article *wikiscrape.Article) string {
	return fmt.Sprintf("Titre: %s\n\nURL: %s\n\nRésumé:\n%s\n", article.Title, article.URL, article.Summary)
}
