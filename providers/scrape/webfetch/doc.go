// Package webfetch implements [scrape.Scraper] without any hosted service:
// it GETs the page itself and converts the HTML to Markdown with
// html-to-markdown.
//
// Partial URLs such as "example.com" get an https:// prefix. Bodies larger
// than [MaxBodySize] are rejected.
package webfetch
