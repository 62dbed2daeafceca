// Package cli provides the interactive profcli command-line client.
//
// It wires configuration, the local token store, the API gateway, and an
// interactive REPL. Typical flow: restore the previous session from the
// persisted token, then execute user commands.
//
// Key features:
//   - Signup / Login / Logout
//   - Whoami: show the current profile
//   - Update: partial profile changes
//
// The REPL is started via App.Root(ctx), which blocks until the user exits.
package cli
