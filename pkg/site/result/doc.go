// Package result describes the outcome of a site build.
//
// Output lists every file the build wrote, one Page per rendered recipe and
// the recipe documents that were skipped because they failed to decode or
// validate:
//
//	out, err := builder.Build(ctx)
//	if err != nil {
//	    return err
//	}
//	fmt.Println(out.Summary())
//	// Built 12 pages, 27 files (1.4 MB) in 85ms. Skipped 1 document.
//
// Output embeds a header.Header of kind BuildResult, so it serializes with
// the same envelope as the other structured results.
package result
