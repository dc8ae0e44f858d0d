package merge

import (
	"fmt"
	"strings"

	"github.com/leofalp/flowcanvas/core/flow"
)

// Rows lays snippets out as single-column spreadsheet rows. Each snippet gets
// a "<label> (Source n)" header, its content rows, and one empty row.
//
// Scraped markdown keeps one row per line, minus blank lines and headings.
// Chat responses keep one row per paragraph. Anything else keeps one row per
// non-blank line.
func Rows(snippets []flow.Snippet) [][]string {
	var rows [][]string
	for i, s := range snippets {
		rows = append(rows, []string{fmt.Sprintf("%s (Source %d)", s.Label, i+1)})

		switch s.Kind {
		case flow.KindScrape:
			for _, line := range strings.Split(s.Content, "\n") {
				if strings.TrimSpace(line) == "" || strings.HasPrefix(line, "#") {
					continue
				}
				rows = append(rows, []string{strings.TrimSpace(line)})
			}
		case flow.KindChat:
			for _, paragraph := range strings.Split(s.Content, "\n\n") {
				if p := strings.TrimSpace(paragraph); p != "" {
					rows = append(rows, []string{p})
				}
			}
		default:
			for _, line := range strings.Split(s.Content, "\n") {
				if l := strings.TrimSpace(line); l != "" {
					rows = append(rows, []string{l})
				}
			}
		}

		rows = append(rows, []string{""})
	}
	return rows
}
