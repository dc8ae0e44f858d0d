// Package nodes wires the store's nodes to their providers.
//
// Each kind lives in its own sub-package (scrape, chat, sheet) and exposes
// the same small surface, captured here by [Node]. A [Set] builds one
// runnable node per store node and keeps them addressable by id for the
// HTTP API and the terminal front end.
package nodes
