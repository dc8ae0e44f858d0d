// Package slogobs implements observability.Provider on top of log/slog.
//
// Spans and metric updates are emitted as structured log lines; counters keep
// their running totals in memory so tests and the terminal front end can read
// them back. Output format (compact, pretty, json) and level come from
// FLOWCANVAS_LOG_FORMAT / FLOWCANVAS_LOG_LEVEL unless overridden with options.
package slogobs
