// Package cli provides the interactive friendgraph command-line client.
//
// It wires configuration, the TCP API client and the session and social
// services into a REPL. A background watcher pings the server and redials
// after a dropped connection, switching the prompt between online and
// offline.
//
// The REPL is started via App.Run(ctx), which blocks until the user exits
// or input ends.
package cli
