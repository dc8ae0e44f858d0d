// Package action wraps the single provider call a node makes when the user
// presses its button.
//
// A [Runner] allows one call in flight at a time and remembers how the last
// one ended. Calls are detached from the caller's cancellation: once started
// they run until the provider answers or fails. Errors are classified with
// the sentinels in errors.go so front ends can phrase them for the user.
package action
