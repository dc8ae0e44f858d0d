// Package workflow loads the initial graph of a canvas.
//
// A definition lists nodes and edges. It can be written as JSON (in the
// canvas's own {"id","type","position","data"} shape, parsed leniently),
// as YAML with the same fields, or as HCL:
//
//	node "scrape-1" {
//	  type = "scrape"
//	  x    = 100
//	  data = { url = "https://example.com" }
//	}
//
//	edge {
//	  source = "scrape-1"
//	  target = "chat-1"
//	}
//
// Definitions are read once at startup; nothing is written back.
package workflow
