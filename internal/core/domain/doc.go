// Package domain contains the core business entities for folio:
// publications, their visibility lifecycle, reader statistics and
// branding. Domain types have no dependencies on adapters or services.
package domain
