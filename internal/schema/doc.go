// Package schema is the single description of the card application form.
//
// Every consumer of form data goes through this package: the collector
// validates against it, the submission service coerces it into a
// domain.Application, and the document renderer walks its sections to lay
// out the PDF. Adding a field means adding one entry to the table in
// fields.go.
package schema
