// Package application implements the card application submission pipeline.
//
// A submission runs four steps in order: build and persist the record,
// render and store the PDF facsimile, email a confirmation, respond. Only
// persistence is a hard failure in every configuration. Rendering is hard
// by default and can be made soft; notification is always soft and
// surfaces as a warning on an otherwise successful result.
//
// Repository implementations live in repository/postgres/, repository/dynamo/
// and repository/memory/.
package application
