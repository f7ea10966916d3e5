package fs

import (
	"fmt"
	"strings"
	"time"

	"github.com/fwojciec/wikiscrape"
)

// ReportFileName is the run summary written when a run saves several
// articles.
const ReportFileName = "RESUME_RECHERCHE.md"

const (
	previewRunes    = 300
	previewSections = 5
)

// ReportEntry is one saved article and where it was written, relative to
// the run directory.
type ReportEntry struct {
	Article *wikiscrape.Article
	Path    string
}

// FormatReport renders the run summary: a table of the saved articles,
// a short preview of each and totals over the run.
func FormatReport(entries []ReportEntry, keyword string, at time.Time) string {
	var b strings.Builder

	if keyword != "" {
		fmt.Fprintf(&b, "# Résumé de recherche : %q\n\n", keyword)
	} else {
		b.WriteString("# Résumé de scraping\n\n")
	}
	fmt.Fprintf(&b, "**Date** : %s\n\n", at.Format(DateFormat))
	fmt.Fprintf(&b, "**Nombre d'articles** : %d\n\n", len(entries))
	b.WriteString("---\n\n")

	b.WriteString("## Articles scrapés\n\n")
	b.WriteString("| # | Article | Sections | Liens | Images | Fichier |\n")
	b.WriteString("|---|---------|----------|-------|--------|---------|\n")
	for i, e := range entries {
		a := e.Article
		fmt.Fprintf(&b, "| %d | [%s](%s) | %d | %d | %d | [ouvrir](./%s) |\n",
			i+1, escapeCell(a.Title), a.URL, len(a.Sections), len(a.Links), len(a.Images), e.Path)
	}
	b.WriteString("\n---\n\n")

	b.WriteString("## Résumés des articles\n\n")
	for i, e := range entries {
		a := e.Article
		fmt.Fprintf(&b, "### %d. %s\n\n", i+1, a.Title)
		fmt.Fprintf(&b, "**URL** : [%s](%s)\n\n", a.Title, a.URL)

		if a.Summary != "" {
			b.WriteString(preview(a.Summary, previewRunes))
			b.WriteString("\n\n")
			fmt.Fprintf(&b, "> [Lire l'article complet](./%s)\n\n", e.Path)
		} else {
			b.WriteString(unavailable + "\n\n")
			fmt.Fprintf(&b, "> [Consulter les données](./%s)\n\n", e.Path)
		}

		if len(a.Sections) > 0 {
			b.WriteString("**Sections principales** : ")
			b.WriteString(strings.Join(a.Sections[:min(previewSections, len(a.Sections))], ", "))
			if extra := len(a.Sections) - previewSections; extra > 0 {
				fmt.Fprintf(&b, " (et %d autres...)", extra)
			}
			b.WriteString("\n\n")
		}
		b.WriteString("---\n\n")
	}

	writeStats(&b, entries)
	return b.String()
}

func writeStats(b *strings.Builder, entries []ReportEntry) {
	var sections, links, images, chars int
	for _, e := range entries {
		sections += len(e.Article.Sections)
		links += len(e.Article.Links)
		images += len(e.Article.Images)
		chars += len([]rune(e.Article.Summary))
	}
	var avg float64
	if len(entries) > 0 {
		avg = float64(sections) / float64(len(entries))
	}

	b.WriteString("## Statistiques globales\n\n")
	b.WriteString("```\n")
	fmt.Fprintf(b, "Total articles       : %d\n", len(entries))
	fmt.Fprintf(b, "Total sections       : %d\n", sections)
	fmt.Fprintf(b, "Total liens          : %d\n", links)
	fmt.Fprintf(b, "Total images         : %d\n", images)
	fmt.Fprintf(b, "Moyenne sections     : %.1f\n", avg)
	fmt.Fprintf(b, "Total caractères     : %d\n", chars)
	b.WriteString("```\n")
}

// preview keeps the first n runes of s, marking a cut with "...".
func preview(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n]) + "..."
}

func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}
