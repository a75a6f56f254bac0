// Package pdf adapts MuPDF (via go-fitz) to the driven.DocumentRenderer
// port. Rasterization is bitmap-only: text and annotation layers are not
// extracted, a deliberate scope cut in favour of render speed.
package pdf
