// Package server is the HTTP face of flowcanvas, built on gin.
//
// Routes:
//
//	GET  /health
//	POST /api/google-sheets        write rows with the server-held credential
//	GET  /api/workflow             nodes and edges of the running graph
//	GET  /api/nodes/:id/inputs     snippets flowing into a node
//	POST /api/nodes/:id/run        run a node's action synchronously
//	POST /api/edges                connect two nodes
//
// Every response is JSON. Failures carry an "error" field.
package server
