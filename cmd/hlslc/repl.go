package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"

	"github.com/gogpu/hlslc"
	"github.com/gogpu/hlslc/hlsl"
	"github.com/gogpu/hlslc/source"
)

const (
	historyFile = ".hlslc_history"
	promptMain  = "hlsl> "
	banner      = `hlslc interactive tokenizer. Each line is split into lexems.
Commands: :parse <decls> parses declarations, :quit exits.`
)

func runREPL() int {
	fmt.Println(banner)

	home, _ := os.UserHomeDir()
	histPath := filepath.Join(home, historyFile)

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	if f, err := os.Open(histPath); err == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
	}

	for {
		line, err := ln.Prompt(promptMain)
		if errors.Is(err, io.EOF) {
			fmt.Println()
			break
		}
		if errors.Is(err, liner.ErrPromptAborted) {
			continue
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
		if strings.TrimSpace(line) == "" {
			continue
		}
		ln.AppendHistory(line)

		if quit := evalLine(os.Stdout, line); quit {
			break
		}
	}

	if f, err := os.Create(histPath); err == nil {
		_, _ = ln.WriteHistory(f)
		_ = f.Close()
	}
	return 0
}

// evalLine handles one line of REPL input and reports whether the session
// should end.
func evalLine(w io.Writer, line string) (quit bool) {
	cmd, rest, _ := strings.Cut(strings.TrimSpace(line), " ")
	switch cmd {
	case ":quit", ":q":
		return true
	case ":parse":
		shader, err := hlslc.Parse(rest)
		if err != nil {
			reportError(err, source.Normalize(rest))
			return false
		}
		if err := hlsl.Dump(w, shader.Global); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		return false
	}

	lexems, err := hlslc.Tokenize(line)
	writeLexems(w, lexems)
	if err != nil {
		reportError(err, source.Normalize(line))
	}
	return false
}
