// Package contents parses Debian Contents indices and ranks packages by
// file count.
//
// A Contents index maps installed file paths to the packages that provide
// them, one mapping per line:
//
//	usr/bin/vim                                     editors/vim
//	usr/share/doc/my tool/README                    utils/my-tool,utils/my-tool-extra
//
// The path may contain embedded whitespace, so a data line is split on the
// last maximal run of whitespace; everything after it is the comma-separated
// package list, everything before it is the path. Each package token may be
// qualified with a repository section ("utils/vim"); only the final segment
// is kept as the package name.
//
// # Pipeline
//
// The package provides the streaming half of the debtop pipeline:
//
//	src, err := contents.NewLineSource(gzippedBody)
//	counter := contents.NewCounter()
//	for src.Next() {
//	    if refs, ok := contents.ParseLine(src.Line()); ok {
//	        counter.Record(refs)
//	    }
//	}
//	if err := src.Err(); err != nil { ... }
//	top := counter.TopN(10)
//
// A LineSource is forward-only and single-pass; the whole decompressed
// index is never held in memory. Counters are not safe for concurrent use;
// each pipeline run owns exactly one.
package contents
