// Package main implements the trigo command-line front-end: a thin
// wrapper around internal/turtle's four dialect parsers that reads a file,
// dispatches on its file extension, and writes canonical
// N-Triples/N-Quads to stdout (or reports validation results only).
package main

import (
	"bytes"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/turtlelang/rdfparse/internal/cache"
	"github.com/turtlelang/rdfparse/internal/turtle"
)

const version = "trigo 0.1.0"

func main() {
	var (
		validate = flag.Bool("validate", false, "parse and report errors/warnings only, emit nothing")
		out      = flag.String("out", "N3", "output format: N3 (canonical N-Triples/N-Quads) or raw (no normalisation)")
		verbose  = flag.Bool("verbose", false, "print statement/triple counts and warnings to stderr")
		showVer  = flag.Bool("version", false, "print version and exit")
		cacheDir = flag.String("cache", "", "directory for a content-addressed output cache, keyed on input+dialect+base IRI (disabled if empty)")
	)
	flag.BoolVar(validate, "v", false, "shorthand for --validate")
	flag.Parse()

	if *showVer {
		fmt.Println(version)
		os.Exit(2)
	}

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: trigo [--validate|-v] [--out N3|raw] [--verbose] [--cache dir] <file>")
		os.Exit(1)
	}

	path := flag.Arg(0)
	data, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "trigo: %v\n", err)
		os.Exit(1)
	}

	dialect, err := dialectFromPath(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "trigo: %v\n", err)
		os.Exit(1)
	}

	baseIRI := "file://" + mustAbs(path)

	// The cache only makes sense for the one deterministic, reusable byte
	// stream this tool produces: canonical N3 emission. --validate emits
	// nothing and --out raw discards the parser's output and writes the
	// input bytes back unchanged, so neither participates.
	var store *cache.Store
	if *cacheDir != "" && !*validate && *out != "raw" {
		store, err = cache.Open(*cacheDir)
		if err != nil {
			fmt.Fprintf(os.Stderr, "trigo: %v\n", err)
			os.Exit(1)
		}
		defer store.Close()
	}

	var cacheKey [16]byte
	if store != nil {
		cacheKey = cache.Key(string(data), filepath.Ext(path), baseIRI)
		cached, err := store.Get(cacheKey)
		switch {
		case err == nil:
			os.Stdout.Write(cached)
			if *verbose {
				fmt.Fprintf(os.Stderr, "trigo: served from cache (%s)\n", *cacheDir)
			}
			return
		case err != cache.ErrNotFound:
			fmt.Fprintf(os.Stderr, "trigo: %v\n", err)
			os.Exit(1)
		}
	}

	writer := io.Writer(os.Stdout)
	var buf bytes.Buffer
	if *validate || *out == "raw" {
		writer = io.Discard
	} else if store != nil {
		writer = &buf
	}

	result, perr := turtle.Parse(string(data), writer, *validate, baseIRI, dialect)
	if perr != nil {
		if errs, ok := perr.(*turtle.ParseErrors); ok {
			for _, e := range errs.Errors() {
				fmt.Fprintf(os.Stderr, "trigo: %v\n", e)
			}
		} else {
			fmt.Fprintf(os.Stderr, "trigo: %v\n", perr)
		}
		os.Exit(1)
	}

	if store != nil {
		if err := store.Put(cacheKey, buf.Bytes()); err != nil {
			fmt.Fprintf(os.Stderr, "trigo: warning: caching output: %v\n", err)
		}
		os.Stdout.Write(buf.Bytes())
	}

	if *out == "raw" && !*validate {
		os.Stdout.Write(data)
	}

	if *verbose || *validate {
		fmt.Fprintf(os.Stderr, "trigo: %d statements, %d triples\n", result.Statements, result.Triples)
		for _, w := range result.Warnings {
			fmt.Fprintf(os.Stderr, "trigo: warning: %s\n", w.String())
		}
	}
}

func dialectFromPath(path string) (turtle.Dialect, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".ttl":
		return turtle.DialectTurtle, nil
	case ".trig":
		return turtle.DialectTriG, nil
	case ".nt":
		return turtle.DialectNTriples, nil
	case ".nq":
		return turtle.DialectNQuads, nil
	default:
		return 0, fmt.Errorf("cannot determine dialect from file extension: %s", path)
	}
}

func mustAbs(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return path
	}
	return abs
}
