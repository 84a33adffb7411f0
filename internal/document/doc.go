// Package document renders a submitted application as a PDF facsimile of
// the bank's paper form.
//
// Rendering is split in two: Layout turns a payload into positioned lines,
// and Renderer draws those lines with fpdf. Layout is pure and is what the
// tests inspect; Renderer only adds fonts, colours and the optional logo.
package document
