// Package header provides the common envelope for recipebook command output.
//
// Structured results written by the CLI and returned by the server embed a
// Header so consumers can tell what they are reading and which tool produced
// it:
//
//	type ValidationReport struct {
//	    header.Header `json:",inline" yaml:",inline"`
//	    Files []FileResult `json:"files" yaml:"files"`
//	}
//
//	report.Init(header.KindValidationReport, header.APIVersion, version)
//
// Serialized form:
//
//	kind: ValidationReport
//	apiVersion: recipebook.dev/v1
//	metadata:
//	  timestamp: "2026-03-01T10:30:00Z"
//	  version: v1.2.0
//
// Recipe documents themselves carry no header; they are decoded strictly and
// their schema is fixed.
package header
