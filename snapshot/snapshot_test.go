// Package snapshot_test provides golden snapshot tests for the HLSL front end.
//
// Every HLSL shader in testdata/in/ is parsed and its scope tree, as printed
// by hlsl.Dump, is compared to testdata/golden/scope/<name>.txt. Every
// shader in testdata/err/ must fail to parse; the error rendered with its
// source line is compared to testdata/golden/err/<name>.txt.
//
// To regenerate golden files after intentional changes:
//
//	UPDATE_GOLDEN=1 go test ./snapshot/...
package snapshot_test

import (
	"errors"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"

	"github.com/pmezard/go-difflib/difflib"

	"github.com/gogpu/hlslc"
	"github.com/gogpu/hlslc/hlsl"
	"github.com/gogpu/hlslc/source"
)

// ---------------------------------------------------------------------------
// Test Runner
// ---------------------------------------------------------------------------

// shaderFile represents an input HLSL shader loaded from disk.
type shaderFile struct {
	name   string // base name without extension (e.g., "lit")
	file   string // file name used in error positions
	source string // HLSL source code
}

// TestSnapshots parses every valid input and compares its scope dump with
// the golden file.
func TestSnapshots(t *testing.T) {
	shaders := loadInputShaders(t, filepath.Join("testdata", "in"))
	if len(shaders) == 0 {
		t.Fatal("no input shaders found in testdata/in/")
	}

	for i := range shaders {
		shader := &shaders[i]
		t.Run(shader.name, func(t *testing.T) {
			parsed, err := hlslc.ParseReader(shader.file, strings.NewReader(shader.source), hlslc.DefaultOptions())
			if err != nil {
				t.Fatalf("[%s] parse failed: %v", shader.name, err)
			}

			var sb strings.Builder
			if err := hlsl.Dump(&sb, parsed.Global); err != nil {
				t.Fatalf("[%s] dump failed: %v", shader.name, err)
			}
			compareGolden(t, filepath.Join("testdata", "golden", "scope", shader.name+".txt"), sb.String())
		})
	}
}

// TestErrorSnapshots parses every invalid input and compares the error,
// formatted with its source context, with the golden file.
func TestErrorSnapshots(t *testing.T) {
	shaders := loadInputShaders(t, filepath.Join("testdata", "err"))
	if len(shaders) == 0 {
		t.Fatal("no input shaders found in testdata/err/")
	}

	for i := range shaders {
		shader := &shaders[i]
		t.Run(shader.name, func(t *testing.T) {
			_, err := hlslc.ParseReader(shader.file, strings.NewReader(shader.source), hlslc.DefaultOptions())
			if err == nil {
				t.Fatalf("[%s] parse succeeded, want an error", shader.name)
			}
			var serr *source.Error
			if !errors.As(err, &serr) {
				t.Fatalf("[%s] error %T is not a *source.Error: %v", shader.name, err, err)
			}
			actual := serr.FormatWithContext(source.Normalize(shader.source))
			compareGolden(t, filepath.Join("testdata", "golden", "err", shader.name+".txt"), actual)
		})
	}
}

// ---------------------------------------------------------------------------
// Shader Loading
// ---------------------------------------------------------------------------

// loadInputShaders reads all .hlsl files from the given directory.
func loadInputShaders(t *testing.T, dir string) []shaderFile {
	t.Helper()

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read input directory %q: %v", dir, err)
	}

	var shaders []shaderFile
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".hlsl") {
			continue
		}
		data, readErr := os.ReadFile(filepath.Join(dir, entry.Name()))
		if readErr != nil {
			t.Fatalf("read shader %q: %v", entry.Name(), readErr)
		}
		shaders = append(shaders, shaderFile{
			name:   strings.TrimSuffix(entry.Name(), ".hlsl"),
			file:   entry.Name(),
			source: string(data),
		})
	}

	// Sort for deterministic test order
	sort.Slice(shaders, func(i, j int) bool {
		return shaders[i].name < shaders[j].name
	})

	return shaders
}

// ---------------------------------------------------------------------------
// Golden File Comparison
// ---------------------------------------------------------------------------

// compareGolden compares actual output with the golden file at path, or
// rewrites the golden file when UPDATE_GOLDEN is set.
func compareGolden(t *testing.T, path, actual string) {
	t.Helper()

	if os.Getenv("UPDATE_GOLDEN") != "" {
		if mkErr := os.MkdirAll(filepath.Dir(path), 0o755); mkErr != nil {
			t.Fatalf("create golden dir: %v", mkErr)
		}
		if wErr := os.WriteFile(path, []byte(actual), 0o644); wErr != nil {
			t.Fatalf("write golden file: %v", wErr)
		}
		t.Logf("updated golden file: %s", path)
		return
	}

	expected, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		t.Fatalf("golden file missing: %s\nRun with UPDATE_GOLDEN=1 to create.\n\nActual output:\n%s", path, truncate(actual, 500))
	}
	if err != nil {
		t.Fatalf("read golden file %s: %v", path, err)
	}

	// Git may convert \n to \r\n on Windows checkout.
	expectedStr := strings.ReplaceAll(string(expected), "\r\n", "\n")
	actualStr := strings.ReplaceAll(actual, "\r\n", "\n")

	if expectedStr != actualStr {
		t.Errorf("output differs from golden %s:\n%s", path, diffStrings(path, expectedStr, actualStr))
	}
}

// diffStrings renders a unified diff between the golden and actual text.
func diffStrings(path, expected, actual string) string {
	diff, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(expected),
		B:        difflib.SplitLines(actual),
		FromFile: path,
		ToFile:   "actual",
		Context:  3,
	})
	if err != nil {
		return err.Error()
	}
	return diff
}

// truncate shortens s to at most maxLen bytes, appending a marker if cut.
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "\n... (truncated)"
}
