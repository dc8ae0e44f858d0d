// Package flow holds the workflow graph shared by every node on the canvas
// and the rules by which a node sees its upstream neighbours.
//
// A [Store] owns the nodes and edges. Nodes read anything through it, but
// write only through the [Scope] bound to their own id, and only by replacing
// their whole payload. [Resolve] turns the edges pointing at a node into
// [Snippet] values, one per upstream node that currently has output.
package flow
