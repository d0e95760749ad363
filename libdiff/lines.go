// Package libdiff computes line diffs between texts.
package libdiff

import (
	"fmt"
	"strings"

	diffpatch "github.com/sergi/go-diff/diffmatchpatch"
)

type Op int8

const (
	Equal Op = iota
	Delete
	Insert
)

func (o Op) Prefix() string {
	switch o {
	case Delete:
		return "-"
	case Insert:
		return "+"
	}
	return " "
}

// Line is one line of a diff, without its line terminator.
type Line struct {
	Op   Op
	Text string
}

// Lines diffs from and to line by line.
func Lines(from, to string) []Line {
	dmp := diffpatch.New()
	a, b, lines := dmp.DiffLinesToChars(from, to)
	diffs := dmp.DiffMain(a, b, false)
	diffs = dmp.DiffCharsToLines(diffs, lines)
	var res []Line
	for _, d := range diffs {
		op := Equal
		switch d.Type {
		case diffpatch.DiffDelete:
			op = Delete
		case diffpatch.DiffInsert:
			op = Insert
		}
		for _, ln := range split(d.Text) {
			res = append(res, Line{Op: op, Text: ln})
		}
	}
	return res
}

func split(text string) []string {
	parts := strings.SplitAfter(text, "\n")
	if parts[len(parts)-1] == "" {
		parts = parts[:len(parts)-1]
	}
	for i, p := range parts {
		parts[i] = strings.TrimSuffix(p, "\n")
	}
	return parts
}

// Changed reports whether a diff has any insertions or deletions.
func Changed(lines []Line) bool {
	for _, ln := range lines {
		if ln.Op != Equal {
			return true
		}
	}
	return false
}

// Unified renders the diff of from and to with context unchanged lines
// around each change. Elided runs are marked with "@@". It returns the
// empty string when the texts have the same lines.
func Unified(name, from, to string, context int) string {
	lines := Lines(from, to)
	if !Changed(lines) {
		return ""
	}
	keep := make([]bool, len(lines))
	for i, ln := range lines {
		if ln.Op == Equal {
			continue
		}
		for j := max(0, i-context); j <= min(len(lines)-1, i+context); j++ {
			keep[j] = true
		}
	}
	buf := &strings.Builder{}
	fmt.Fprintf(buf, "--- %s\n+++ %s\n", name, name)
	skipped := false
	for i, ln := range lines {
		if !keep[i] {
			skipped = true
			continue
		}
		if skipped {
			buf.WriteString("@@\n")
		}
		skipped = false
		buf.WriteString(ln.Op.Prefix())
		buf.WriteString(ln.Text)
		buf.WriteByte('\n')
	}
	if skipped {
		buf.WriteString("@@\n")
	}
	return buf.String()
}
