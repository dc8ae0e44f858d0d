// Command extract-credentials prints the two environment variables the
// sheet-write endpoint needs, taken from a Google service-account key file.
//
//	extract-credentials path/to/service-account.json >> .env.local
package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/leofalp/flowcanvas/internal/credentials"
)

const (
	exitOK          = 0
	exitError       = 1
	exitNotFound    = 2
	exitInvalidJSON = 3
	exitMissing     = 4
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	if len(args) == 0 {
		fmt.Fprintln(stdout, "Usage: extract-credentials path/to/service-account.json")
		fmt.Fprintln(stdout)
		fmt.Fprintln(stdout, "Extracts Google Sheets service account credentials from a JSON key file")
		fmt.Fprintln(stdout, "and formats them for use in .env.local")
		return exitOK
	}

	sa, err := credentials.LoadFile(args[0])
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitCode(err)
	}

	fmt.Fprintln(stdout, "Successfully extracted credentials!")
	fmt.Fprintln(stdout)
	fmt.Fprintln(stdout, "Add these to your .env.local file:")
	fmt.Fprintln(stdout)
	for _, line := range sa.EnvLines() {
		fmt.Fprintln(stdout, line)
	}
	fmt.Fprintln(stdout)
	fmt.Fprintln(stdout, "Security reminder:")
	fmt.Fprintln(stdout, "- Never commit these credentials to version control")
	fmt.Fprintln(stdout, "- Keep your service account JSON file secure")
	fmt.Fprintln(stdout, "- Share your Google Sheet with this service account email")
	return exitOK
}

func exitCode(err error) int {
	switch {
	case errors.Is(err, credentials.ErrNotFound):
		return exitNotFound
	case errors.Is(err, credentials.ErrInvalidJSON):
		return exitInvalidJSON
	case errors.Is(err, credentials.ErrMissingFields):
		return exitMissing
	default:
		return exitError
	}
}
