// Package driven defines the outbound ports: interfaces the core depends
// on, implemented by storage, rendering and config adapters.
package driven
