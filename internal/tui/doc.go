// Package tui is the terminal canvas. It lists the workflow's nodes and lets
// the user trigger, edit and connect them.
//
// It follows the Elm architecture of bubbletea: App holds the state, Update
// turns key presses and action completions into new state, and View renders
// it. Actions run in the background through each node's own runner, so the
// list keeps redrawing (with a spinner) while a call is in flight.
package tui
