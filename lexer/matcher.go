// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package lexer

type candidateKind uint8

const (
	candidateOperator candidateKind = iota
	candidateKeyword
	candidateSingleLineComment
	candidateMultiLineComment
)

type candidate struct {
	kind candidateKind
	id   DeclID
	text []rune
}

// candidateMatcher narrows a candidate list one character at a time. It is
// shared by operator/comment recognition and keyword recognition.
//
// After each accepted character, full reports whether some candidate is
// exactly as long as the text fed so far; longer candidates stay alive so
// that the longest match wins.
type candidateMatcher struct {
	live  []candidate
	index int
	dead  bool

	full    candidate
	hasFull bool
}

func (m *candidateMatcher) reset(cands []candidate) {
	m.live = append(m.live[:0], cands...)
	m.index = 0
	m.dead = false
	m.hasFull = false
}

// feed narrows the candidates by c. It returns false, leaving the previous
// full match untouched, when no candidate continues with c.
func (m *candidateMatcher) feed(c rune) bool {
	if m.dead {
		return false
	}

	n := 0
	var full candidate
	hasFull := false
	for _, cand := range m.live {
		if m.index < len(cand.text) && cand.text[m.index] == c {
			m.live[n] = cand
			n++
			if len(cand.text) == m.index+1 {
				full = cand
				hasFull = true
			}
		}
	}
	m.live = m.live[:n]
	if n == 0 {
		m.dead = true
		return false
	}

	m.index++
	m.full = full
	m.hasFull = hasFull
	return true
}

// longerAlive reports whether a candidate longer than the matched prefix
// is still possible.
func (m *candidateMatcher) longerAlive() bool {
	for _, cand := range m.live {
		if len(cand.text) > m.index {
			return true
		}
	}
	return false
}

// matched returns the candidate that exactly spans every accepted
// character. Characters rejected by feed are not part of the match.
func (m *candidateMatcher) matched() (candidate, bool) {
	if !m.hasFull {
		return candidate{}, false
	}
	return m.full, true
}

// exact is like matched but also fails once a character was rejected, so
// "floatx" does not match the keyword "float".
func (m *candidateMatcher) exact() (candidate, bool) {
	if m.dead {
		return candidate{}, false
	}
	return m.matched()
}

func toCandidates(kind candidateKind, decls []Decl) []candidate {
	out := make([]candidate, 0, len(decls))
	for _, d := range decls {
		out = append(out, candidate{kind: kind, id: d.ID, text: []rune(d.Text)})
	}
	return out
}
