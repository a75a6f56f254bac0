// Package driving defines the inbound ports: service interfaces consumed
// by the CLI and TUI adapters.
package driving
