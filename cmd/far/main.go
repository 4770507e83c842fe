// Copyright 2026 The Far Authors
// SPDX-License-Identifier: Apache-2.0

// Command far inspects .far archives from the command line. It never
// needs the full codec registry for structural operations (list,
// digest, extract); the info subcommand decodes with the built-in
// domain codecs registered.
package main

import (
	"archive/zip"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"sort"
	"text/tabwriter"

	"github.com/spf13/pflag"
	"github.com/zeebo/blake3"

	"github.com/far-foundation/far"
	"github.com/far-foundation/far/lib/coords"
	"github.com/far-foundation/far/lib/ndarray"
	"github.com/far-foundation/far/lib/signal"
	"github.com/far-foundation/far/lib/version"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	if len(os.Args) < 2 {
		printUsage()
		return fmt.Errorf("subcommand required")
	}

	subcommand := os.Args[1]
	switch subcommand {
	case "list":
		return runList(os.Args[2:])
	case "info":
		return runInfo(os.Args[2:])
	case "digest":
		return runDigest(os.Args[2:])
	case "extract":
		return runExtract(os.Args[2:])
	case "version":
		fmt.Printf("far %s\n", version.Info())
		return nil
	case "-h", "--help", "help":
		printUsage()
		return nil
	default:
		printUsage()
		return fmt.Errorf("unknown subcommand: %q", subcommand)
	}
}

func printUsage() {
	fmt.Fprintf(os.Stderr, `Usage: far <subcommand> [flags] <archive>

Subcommands:
  list      List archive entries with sizes and storage method
  info      Decode the archive and describe each stored object
  digest    Print BLAKE3 digests of each entry payload and the file
  extract   Write one entry's raw payload to a file or stdout
  version   Print version information

Run 'far <subcommand> --help' for subcommand flags.
`)
}

// openArchive opens the zip container behind a .far path, resolving
// the extension the same way the engine does.
func openArchive(path string) (*zip.ReadCloser, string, error) {
	resolved := path
	if _, err := os.Stat(resolved); os.IsNotExist(err) {
		resolved = path + far.Extension
	}
	reader, err := zip.OpenReader(resolved)
	if err != nil {
		return nil, "", fmt.Errorf("opening archive %s: %w", resolved, err)
	}
	return reader, resolved, nil
}

func runList(args []string) error {
	flags := pflag.NewFlagSet("list", pflag.ContinueOnError)
	flags.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: far list <archive>\n\n")
		flags.PrintDefaults()
	}
	if err := flags.Parse(args); err != nil {
		return err
	}
	if flags.NArg() != 1 {
		flags.Usage()
		return fmt.Errorf("exactly one archive path required")
	}

	reader, _, err := openArchive(flags.Arg(0))
	if err != nil {
		return err
	}
	defer reader.Close()

	writer := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(writer, "ENTRY\tSIZE\tSTORED\tMETHOD")
	for _, file := range reader.File {
		fmt.Fprintf(writer, "%s\t%d\t%d\t%s\n",
			file.Name, file.UncompressedSize64, file.CompressedSize64,
			methodName(file.Method))
	}
	return writer.Flush()
}

func methodName(method uint16) string {
	switch method {
	case zip.Store:
		return "store"
	case zip.Deflate:
		return "deflate"
	default:
		return fmt.Sprintf("unknown(%d)", method)
	}
}

func runInfo(args []string) error {
	flags := pflag.NewFlagSet("info", pflag.ContinueOnError)
	flags.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: far info <archive>\n\n")
		flags.PrintDefaults()
	}
	if err := flags.Parse(args); err != nil {
		return err
	}
	if flags.NArg() != 1 {
		flags.Usage()
		return fmt.Errorf("exactly one archive path required")
	}

	registry := far.NewRegistry()
	if err := signal.Register(registry); err != nil {
		return err
	}
	if err := coords.Register(registry); err != nil {
		return err
	}

	objects, err := registry.Read(flags.Arg(0))
	if err != nil {
		return err
	}

	names := make([]string, 0, len(objects))
	for name := range objects {
		names = append(names, name)
	}
	sort.Strings(names)

	writer := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(writer, "OBJECT\tKIND\tDETAIL")
	for _, name := range names {
		kind, detail := describe(objects[name])
		fmt.Fprintf(writer, "%s\t%s\t%s\n", name, kind, detail)
	}
	return writer.Flush()
}

// describe renders one decoded object as a kind name and a short
// human-readable detail string.
func describe(value any) (string, string) {
	switch v := value.(type) {
	case *ndarray.Array:
		return "array", v.String()
	case *signal.Signal:
		return "signal", fmt.Sprintf("%s at %g Hz", v.Data(), v.SamplingRate())
	case *signal.TimeData:
		return "timedata", fmt.Sprintf("%s over %s", v.Data(), v.Times())
	case *signal.FrequencyData:
		return "frequencydata", fmt.Sprintf("%s at %s", v.Data(), v.Frequencies())
	case *coords.Coordinates:
		detail := fmt.Sprintf("%d points", v.Len())
		if v.Weights() != nil {
			detail += ", weighted"
		}
		return "coordinates", detail
	case string:
		return "string", fmt.Sprintf("%q", v)
	case far.Tuple:
		return "tuple", fmt.Sprintf("%d items", len(v))
	case far.Set:
		return "set", fmt.Sprintf("%d items", len(v))
	case far.FrozenSet:
		return "frozenset", fmt.Sprintf("%d items", len(v))
	case []any:
		return "list", fmt.Sprintf("%d items", len(v))
	case []byte:
		return "bytes", fmt.Sprintf("%d bytes", len(v))
	default:
		return fmt.Sprintf("%T", v), fmt.Sprint(v)
	}
}

func runDigest(args []string) error {
	flags := pflag.NewFlagSet("digest", pflag.ContinueOnError)
	fileOnly := flags.Bool("file-only", false, "digest the whole file only, skip per-entry digests")
	flags.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: far digest [flags] <archive>\n\n")
		flags.PrintDefaults()
	}
	if err := flags.Parse(args); err != nil {
		return err
	}
	if flags.NArg() != 1 {
		flags.Usage()
		return fmt.Errorf("exactly one archive path required")
	}

	reader, resolved, err := openArchive(flags.Arg(0))
	if err != nil {
		return err
	}
	defer reader.Close()

	writer := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	if !*fileOnly {
		for _, file := range reader.File {
			payload, err := readEntryPayload(file)
			if err != nil {
				return err
			}
			sum := blake3.Sum256(payload)
			fmt.Fprintf(writer, "%s\t%s\n", hex.EncodeToString(sum[:]), file.Name)
		}
	}

	// The whole-file digest covers the container bytes, so it changes
	// with compression settings even when entry digests do not.
	data, err := os.ReadFile(resolved)
	if err != nil {
		return fmt.Errorf("reading archive: %w", err)
	}
	sum := blake3.Sum256(data)
	fmt.Fprintf(writer, "%s\t%s\n", hex.EncodeToString(sum[:]), resolved)
	return writer.Flush()
}

func runExtract(args []string) error {
	flags := pflag.NewFlagSet("extract", pflag.ContinueOnError)
	output := flags.StringP("output", "o", "", "output file (default stdout)")
	flags.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: far extract [flags] <archive> <entry-path>\n\n")
		flags.PrintDefaults()
	}
	if err := flags.Parse(args); err != nil {
		return err
	}
	if flags.NArg() != 2 {
		flags.Usage()
		return fmt.Errorf("archive path and entry path required")
	}

	reader, _, err := openArchive(flags.Arg(0))
	if err != nil {
		return err
	}
	defer reader.Close()

	entryPath := flags.Arg(1)
	for _, file := range reader.File {
		if file.Name != entryPath {
			continue
		}
		payload, err := readEntryPayload(file)
		if err != nil {
			return err
		}
		if *output == "" {
			_, err := os.Stdout.Write(payload)
			return err
		}
		return os.WriteFile(*output, payload, 0o644)
	}
	return fmt.Errorf("entry %q not found in archive", entryPath)
}

func readEntryPayload(file *zip.File) ([]byte, error) {
	opened, err := file.Open()
	if err != nil {
		return nil, fmt.Errorf("opening entry %q: %w", file.Name, err)
	}
	defer opened.Close()

	payload, err := io.ReadAll(opened)
	if err != nil {
		return nil, fmt.Errorf("reading entry %q: %w", file.Name, err)
	}
	return payload, nil
}
