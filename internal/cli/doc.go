// Package cli turns the noisegridgo command line into an app.Config. It owns
// the flag set and usage text, rejects malformed generation settings such as
// an unknown blend order or image format, and reports them as an ExitError
// carrying the process exit code.
package cli
