// Package firecrawl implements [scrape.Scraper] on top of the Firecrawl
// scrape endpoint (POST {base}/v1/scrape, markdown format only).
//
// The key is read from FIRECRAWL_API_KEY and the base URL from
// FIRECRAWL_API_BASE_URL (default https://api.firecrawl.dev).
package firecrawl
