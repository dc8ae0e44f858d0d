// Package merge turns upstream snippets into what a consumer node sends to
// its provider: a single prompt for the chat node, or a single-column table
// for the sheet writer. Everything here is pure.
package merge
