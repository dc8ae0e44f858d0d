// Package sheets writes row data into a spreadsheet range.
//
// Two [Writer] implementations exist. [Google] holds the service-account
// credential and calls the Sheets API directly; it backs the server-side
// POST /api/google-sheets endpoint. [Client] posts the same request to that
// endpoint, so the credential never leaves the server.
package sheets
