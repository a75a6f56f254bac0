// Package flipbook contains the page-flip viewer core: viewport fitting,
// render virtualization, the flip navigation state machine, page roles and
// the zoom/pan transform. Everything here is pure state and arithmetic;
// rendering and input wiring live in the TUI adapter.
//
// Dimensions are expressed in virtual pixels: width units are terminal
// columns, height units are half-block pixels (two per terminal row), so
// aspect-ratio maths carries over from page points unchanged.
package flipbook
