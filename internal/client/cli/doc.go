// Package cli provides the workbench command-line client.
//
// It wires configuration, the session store backend, the provider client
// and the auth controller, then exposes them through cobra subcommands:
//
//   - login / logout / whoami: one-shot session management
//   - shell: an interactive REPL whose prompt shows the signed-in user and
//     whose "open" command runs the route guard against the page table
//   - serve: the localhost web shell
//   - version: build information
//
// Every command bootstraps the controller from the session store first, so
// a session created by one command is picked up by the next.
package cli
