// Package utils holds the small HTTP and string helpers shared by the
// provider clients: [DoPostSync] for JSON round-trips with an [HTTPError] on
// non-2xx answers, [CloseWithLog] for deferred body closes, and [Ptr].
package utils
