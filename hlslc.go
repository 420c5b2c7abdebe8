// Package hlslc provides a Pure Go front end for HLSL shaders.
//
// hlslc reads HLSL source and builds a tree of scopes holding the shader's
// structs, cbuffers, global variables and functions, with their register
// and semantic bindings resolved. Function bodies are kept verbatim.
//
// Example usage:
//
//	shader, err := hlslc.Parse(`
//	cbuffer Camera : register(b0) { float4x4 viewProj; };
//	float4 main(float4 pos : POSITION) : SV_Position { return mul(pos, viewProj); }
//	`)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	hlsl.Dump(os.Stdout, shader.Global)
//
// For lower-level access, use the source, lexer and hlsl packages directly.
package hlslc

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"runtime"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/gogpu/hlslc/hlsl"
	"github.com/gogpu/hlslc/lexer"
	"github.com/gogpu/hlslc/source"
)

// Options configures parsing.
type Options struct {
	// Lexer overrides the lexer configuration. When nil the HLSL
	// configuration for Registry is used.
	Lexer *lexer.Options

	// Registry holds the built-in types (default: hlsl.DefaultRegistry).
	Registry *hlsl.TypeRegistry

	// ShaderModel restricts register spaces and semantics to those the
	// model supports. The zero value accepts everything.
	ShaderModel hlsl.ShaderModel

	// Jobs bounds the number of files ParseFiles parses at once
	// (default: GOMAXPROCS).
	Jobs int
}

// DefaultOptions returns sensible default options.
func DefaultOptions() Options {
	return Options{
		Registry: hlsl.DefaultRegistry(),
		Jobs:     runtime.GOMAXPROCS(0),
	}
}

func (o Options) withDefaults() Options {
	if o.Registry == nil {
		o.Registry = hlsl.DefaultRegistry()
	}
	if o.Lexer == nil {
		o.Lexer = hlsl.LexerOptions(o.Registry)
	}
	if o.Jobs <= 0 {
		o.Jobs = runtime.GOMAXPROCS(0)
	}
	return o
}

// Parse parses HLSL source using default options.
func Parse(src string) (*hlsl.Shader, error) {
	return ParseReader("", strings.NewReader(src), DefaultOptions())
}

// ParseReader parses HLSL read from r. name is used in error positions and
// may be empty.
func ParseReader(name string, r io.Reader, opts Options) (*hlsl.Shader, error) {
	opts = opts.withDefaults()
	lx, err := lexer.New(source.NewReader(name, r), opts.Lexer)
	if err != nil {
		return nil, fmt.Errorf("lexer: %w", err)
	}
	return hlsl.NewParser(lx,
		hlsl.WithRegistry(opts.Registry),
		hlsl.WithShaderModel(opts.ShaderModel),
	).ParseShader()
}

// Tokenize splits HLSL source into lexems, up to and including the
// EndOfStream lexem.
func Tokenize(src string) ([]lexer.Lexem, error) {
	return TokenizeReader("", strings.NewReader(src), DefaultOptions())
}

// TokenizeReader splits the text read from r into lexems.
func TokenizeReader(name string, r io.Reader, opts Options) ([]lexer.Lexem, error) {
	opts = opts.withDefaults()
	lx, err := lexer.New(source.NewReader(name, r), opts.Lexer)
	if err != nil {
		return nil, fmt.Errorf("lexer: %w", err)
	}
	return lx.Tokenize()
}

// FileResult is the outcome of parsing one file with ParseFiles.
type FileResult struct {
	Path string

	// Text is the file content with newlines normalized, suitable for
	// source.Error.FormatWithContext.
	Text string

	// Size is the file size in bytes.
	Size int64

	// Shader is nil when Err is set.
	Shader *hlsl.Shader
	Err    error
}

// ParseFiles parses the files at paths concurrently, at most opts.Jobs at
// a time. Results are returned in the order of paths. Read and parse
// failures are reported per file in FileResult.Err; the returned error is
// non-nil only for invalid options or when ctx is done.
func ParseFiles(ctx context.Context, paths []string, opts Options) ([]FileResult, error) {
	opts = opts.withDefaults()
	if err := opts.Lexer.Validate(); err != nil {
		return nil, fmt.Errorf("lexer: %w", err)
	}

	results := make([]FileResult, len(paths))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.Jobs)
	for i, path := range paths {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = parseFile(path, opts)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return results, err
	}
	if err := ctx.Err(); err != nil {
		return results, err
	}
	return results, nil
}

func parseFile(path string, opts Options) FileResult {
	res := FileResult{Path: path}
	data, err := os.ReadFile(path)
	if err != nil {
		res.Err = err
		return res
	}
	res.Size = int64(len(data))
	res.Text = source.Normalize(string(data))
	res.Shader, res.Err = ParseReader(path, bytes.NewReader(data), opts)
	return res
}
