// Package mpq extracts, lists, views and creates MPQ archives.
//
// The package orchestrates archive operations: it translates between the
// backslash-separated names stored in archives and host paths, filters
// entries with glob patterns, walks input directories (following symbolic
// links) and collects per-entry failures as warnings instead of aborting a
// batch. Archive bytes are produced and consumed by a Format, which defaults
// to MPQFormat.
//
// Basic usage:
//
//	client, err := mpq.New()
//	if err != nil {
//	    return err
//	}
//
//	report, err := client.Extract(ctx, "maps/(2)BootyBay.w3m", "out/", mpq.WithFilter("**.j"))
//	if err != nil {
//	    return err
//	}
//	for _, w := range report.Warnings {
//	    fmt.Fprintf(os.Stderr, "skipped %s: %v\n", w.Name, w.Err)
//	}
//
// # Error handling
//
// Fatal errors are returned as the error result and carry a code from the
// errors package (see errors.GetCode). Per-entry failures during extract
// and pack are recoverable: they are logged at WARN level and returned in
// the report's Warnings slice while the remaining entries are processed.
//
// # Paths
//
// Entry names are normalized by replacing '\' with '/' before matching and
// before joining onto the output root. Names that would resolve outside the
// output root are rejected with ErrPathEscape.
package mpq
