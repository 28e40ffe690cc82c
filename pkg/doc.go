// Package pkg provides the core libraries for debtop package statistics.
//
// # Overview
//
// debtop answers one question: which Debian packages install the most
// files? It does so by streaming a Contents index from a mirror and
// counting file references per package. The pkg directory is organized
// into a few areas:
//
//  1. [mirror] - Mirror coordinates, index URLs, and fetching
//  2. [contents] - Contents index parsing and per-package counting
//  3. [pipeline] - Orchestration (fetch → parse → rank), with caching
//  4. [cache] - Result cache backends (file, redis, null)
//  5. [errors], [httputil], [observability], [buildinfo] - Supporting infrastructure
//
// # Architecture
//
// The typical data flow through debtop:
//
//	Debian mirror (Contents-<arch>.gz)
//	         ↓
//	    [mirror] package (locate + fetch the index)
//	         ↓
//	    [contents] package (decompress, parse lines, count references)
//	         ↓
//	    [pipeline] package (rank, cache, report)
//	         ↓
//	    Terminal table / JSON API
//
// # Quick Start
//
//	runner := pipeline.NewRunner(nil, nil, nil)
//	res, err := runner.Run(ctx, pipeline.Options{
//		Locator: mirror.Locator{Arch: "amd64"},
//	})
package pkg
