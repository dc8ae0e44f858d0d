// Package scrape defines the contract shared by page scrapers used by the
// scrape node. A [Scraper] turns a URL into Markdown.
//
// Implementations live in sub-packages:
//   - firecrawl: hosted scraping through the Firecrawl API (needs a key)
//   - webfetch: local HTTP fetch plus HTML to Markdown conversion
package scrape
