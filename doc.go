// Package strata ingests delimiter-separated text (DSV/CSV-like) and
// exposes it as tabular data, either fully materialized or as a forward-only
// stream suitable for inputs larger than available memory. It infers, per
// value and per column, a semantic datatype from raw text.
//
// # Architecture
//
// Data flows text source -> tokenizer -> row parser -> tabular model:
//
//  1. pkg/tokenizer splits one logical line into fields, honoring a
//     delimiter and an optional quoting ("bookend") character with
//     doubled-bookend escaping.
//
//  2. pkg/dsv drives the tokenizer over a full text body or a lazy line
//     stream, producing materialized rows or a chunked forward-only
//     RowReader, and profiles columns of a materialized row set.
//
//  3. pkg/tabular shapes rows into tables. The streaming model merges
//     multi-row headers, reconciles rows of varying width, skips empty
//     rows, and trims trailing footer rows with a fixed-size window; the
//     in-memory model adds random access and a read-only typed projection.
//
//  4. pkg/infer classifies string values into a closed datatype set and
//     aggregates classification over whole columns, with an incremental
//     early-exit path for large collections.
//
// pkg/textfile supplies file-backed line sources with header/footer
// skipping, BOM stripping, and transparent gzip decompression; pkg/config
// carries the shared read configuration.
//
// # Quick Start
//
// Profile a CSV file from the command line:
//
//	strata profile --input data.csv --header-rows 1
//
// Or stream a large file in code:
//
//	src, err := textfile.Open("data.csv", textfile.Options{})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer src.Close()
//
//	reader, err := dsv.NewRowReader(src, dsv.DefaultStreamOptions())
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	table, err := tabular.NewStreamingTable(reader, tabular.DefaultStreamOptions())
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for row := range table.Rows() {
//	    process(row)
//	}
//	if err := table.Err(); err != nil {
//	    log.Fatal(err)
//	}
package strata
