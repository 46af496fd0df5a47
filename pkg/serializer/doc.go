// Package serializer encodes command results and decodes input documents.
//
// # Formats
//
// JSON:
//   - Machine-parseable, indented
//   - Used for API responses and scripting
//
// YAML:
//   - Human-readable, two-space indent
//   - Used for recipe documents and the site configuration file
//
// Table:
//   - Flattened FIELD/VALUE listing for terminals
//   - Struct fields are keyed by their json tag
//   - Values implementing encoding.TextMarshaler print as their text, so a
//     quantity shows as "2 1/3"
//   - Write-only
//
// # Writing
//
//	w := serializer.NewFileWriterOrStdout(serializer.FormatYAML, outPath)
//	defer w.Close()
//	if err := w.Serialize(ctx, report); err != nil {
//	    return err
//	}
//
// For HTTP responses:
//
//	serializer.RespondJSON(w, http.StatusOK, result)
//
// # Reading
//
// Readers accept local paths and http(s) URLs. Remote documents are
// downloaded to a temporary file that Close removes. WithHttpOptions sets
// the download size cap and TLS verification. WithStrict rejects fields
// the target type does not declare.
//
//	cfg, err := serializer.FromFile[config.File]("recipebook.yaml", serializer.WithStrict(true))
//
// # Format Detection
//
// File extension-based detection:
//   - .json → JSON
//   - .yaml, .yml → YAML
//   - .table, .txt → Table
//   - Other → JSON (default)
package serializer
