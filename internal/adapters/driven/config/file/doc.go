// Package file provides the TOML-backed configuration store. Settings
// such as storage mode, share base URL, watch rate and branding live in
// ~/.folio/config.toml under dot-notation keys.
package file
