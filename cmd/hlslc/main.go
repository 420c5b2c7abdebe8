// Command hlslc is the HLSL front end CLI.
//
// Usage:
//
//	hlslc [options] <input>...
//
// Examples:
//
//	hlslc shader.hlsl                   # Parse and print the scope tree
//	hlslc -tokens shader.hlsl           # Print the lexem stream
//	hlslc -j 4 -o scopes.txt *.hlsl     # Parse many files, write to a file
//	hlslc -sm 5.0 shader.hlsl           # Reject features newer than SM 5.0
//	hlslc -i                            # Tokenize lines interactively
package main

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"

	"github.com/dustin/go-humanize"
	"github.com/mattn/go-isatty"

	"github.com/gogpu/hlslc"
	"github.com/gogpu/hlslc/hlsl"
	"github.com/gogpu/hlslc/lexer"
	"github.com/gogpu/hlslc/source"
)

var (
	output      = flag.String("o", "", "output file (default: stdout)")
	tokens      = flag.Bool("tokens", false, "print lexems instead of the scope tree")
	model       = flag.String("sm", "", "target shader model, e.g. 5.0 or 6_1 (default: any)")
	jobs        = flag.Int("j", 0, "files parsed concurrently (default: GOMAXPROCS)")
	verbose     = flag.Bool("v", false, "log progress to stderr")
	interactive = flag.Bool("i", false, "tokenize lines read from the terminal")
	version     = flag.Bool("version", false, "print version")
)

const hlslcVersion = "0.1.0-dev"

func main() {
	flag.Usage = usage
	flag.Parse()

	if *version {
		fmt.Printf("hlslc version %s\n", hlslcVersion)
		return
	}

	level := slog.LevelWarn
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	if *interactive {
		os.Exit(runREPL())
	}

	args := flag.Args()
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "Error: no input file specified")
		usage()
		os.Exit(1)
	}

	out := os.Stdout
	if *output != "" {
		f, err := os.Create(*output)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating output: %v\n", err)
			os.Exit(1)
		}
		out = f
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := run(ctx, logger, out, args)
	stop()
	if out != os.Stdout {
		if err := out.Close(); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing output: %v\n", err)
			code = 1
		}
	}
	os.Exit(code)
}

func run(ctx context.Context, logger *slog.Logger, out io.Writer, paths []string) int {
	w := bufio.NewWriter(out)
	defer w.Flush()

	opts := hlslc.DefaultOptions()
	if *jobs > 0 {
		opts.Jobs = *jobs
	}
	if *model != "" {
		sm, err := hlsl.ParseShaderModel(*model)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
		opts.ShaderModel = sm
	}

	if *tokens {
		return printTokens(logger, w, paths, opts)
	}

	logger.Debug("parsing", "files", len(paths), "jobs", opts.Jobs, "model", opts.ShaderModel)
	results, err := hlslc.ParseFiles(ctx, paths, opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	code := 0
	for _, r := range results {
		if r.Err != nil {
			reportError(r.Err, r.Text)
			code = 1
			continue
		}
		logger.Debug("parsed", "file", r.Path, "size", humanize.Bytes(uint64(r.Size)),
			"definitions", r.Shader.Global.Len())
		if len(results) > 1 {
			fmt.Fprintf(w, "// %s\n", r.Path)
		}
		if err := hlsl.Dump(w, r.Shader.Global); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing output: %v\n", err)
			return 1
		}
	}
	return code
}

func printTokens(logger *slog.Logger, w io.Writer, paths []string, opts hlslc.Options) int {
	code := 0
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error reading file: %v\n", err)
			code = 1
			continue
		}
		logger.Debug("tokenizing", "file", path, "size", humanize.Bytes(uint64(len(data))))

		lexems, err := hlslc.TokenizeReader(path, bytes.NewReader(data), opts)
		writeLexems(w, lexems)
		if err != nil {
			reportError(err, source.Normalize(string(data)))
			code = 1
		}
	}
	return code
}

func writeLexems(w io.Writer, lexems []lexer.Lexem) {
	for _, lx := range lexems {
		fmt.Fprintln(w, lx)
	}
}

// reportError prints err with the offending source line when it carries a
// position, in red when stderr is a terminal.
func reportError(err error, text string) {
	msg := err.Error()
	var serr *source.Error
	if errors.As(err, &serr) {
		msg = serr.FormatWithContext(text)
	}
	if colorStderr() {
		msg = "\x1b[31m" + msg + "\x1b[0m"
	}
	fmt.Fprintln(os.Stderr, msg)
}

func colorStderr() bool {
	fd := os.Stderr.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

func usage() {
	fmt.Fprintf(os.Stderr, "Usage: hlslc [options] <input.hlsl>...\n\n")
	fmt.Fprintf(os.Stderr, "Options:\n")
	flag.PrintDefaults()
	fmt.Fprintf(os.Stderr, "\nExamples:\n")
	fmt.Fprintf(os.Stderr, "  hlslc shader.hlsl                Print the scope tree\n")
	fmt.Fprintf(os.Stderr, "  hlslc -tokens shader.hlsl        Print the lexem stream\n")
	fmt.Fprintf(os.Stderr, "  hlslc -o scopes.txt a.hlsl b.hlsl Write to file\n")
	fmt.Fprintf(os.Stderr, "  hlslc -i                         Interactive tokenizer\n")
}
