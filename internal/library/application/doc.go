// Package application defines the ports consumed by the CLI and the TUI,
// plus the Service that layers caller-facing concerns (input validation,
// search caching, audit logging, tracing) on top of the catalog store.
//
// The store itself stays minimal and synchronous; everything here is glue
// between user intent and the store's contract.
package application
