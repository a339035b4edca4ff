// Package tidy parses clang-tidy logs into annotations.
package tidy

import (
	"errors"
	"fmt"
	"math"
	"os"
	"regexp"
	"strconv"
	"strings"
)

var (
	diagnosticPattern = regexp.MustCompile(`^(.*?):(\d+):(\d+): (warning|error): (.*?) \[(.*?)\]$`)
	notePattern       = regexp.MustCompile(`^(.*?):(\d+):(\d+): note: (.*)$`)
	markerPattern     = regexp.MustCompile(`^(\s*)\^~*\s*$`)
)

// markerOffset is the distance between a diagnostic line and its caret line.
// clang-tidy prints one line of source code in between.
const markerOffset = 2

// ParseFile reads a clang-tidy log from disk and parses it
func ParseFile(path, sourceRoot string) ([]Annotation, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read clang-tidy log %s: %w", path, err)
	}
	return ParseText(string(content), sourceRoot), nil
}

// ParseText splits text into lines and parses them
func ParseText(text, sourceRoot string) []Annotation {
	return Parse(SplitLines(text), sourceRoot)
}

// SplitLines splits text on \n, \r\n and \r. A trailing line break does not
// produce an empty final line.
func SplitLines(text string) []string {
	if text == "" {
		return nil
	}
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	text = strings.TrimSuffix(text, "\n")
	return strings.Split(text, "\n")
}

// Parse converts clang-tidy log lines into annotations, in the order their
// lines appear. Notes reported at the location of the most recent
// diagnostic are folded into that diagnostic. Lines that match no known
// shape are ignored.
func Parse(lines []string, sourceRoot string) []Annotation {
	var annotations []Annotation
	var last *Diagnostic

	for i, line := range lines {
		if m := diagnosticPattern.FindStringSubmatch(line); m != nil {
			loc, ok := parseLocation(m[1], m[2], m[3], sourceRoot)
			if !ok {
				continue
			}
			diag := &Diagnostic{
				Severity: Level(m[4]),
				Location: loc,
				End:      findEnd(lines, i, loc),
				Checks:   strings.Split(m[6], ","),
				Message:  m[5],
			}
			annotations = append(annotations, diag)
			last = diag
			continue
		}

		if m := notePattern.FindStringSubmatch(line); m != nil {
			loc, ok := parseLocation(m[1], m[2], m[3], sourceRoot)
			if !ok {
				continue
			}
			if last != nil && last.Location == loc {
				last.Notes = append(last.Notes, m[4])
				continue
			}
			annotations = append(annotations, &Note{
				Location: loc,
				Title:    NoteTitle,
				Message:  m[4],
			})
		}
	}

	return annotations
}

// NormalizePath strips sourceRoot from the start of file when present
func NormalizePath(file, sourceRoot string) string {
	if sourceRoot == "" {
		return file
	}
	return strings.TrimPrefix(file, sourceRoot)
}

func parseLocation(file, line, col, sourceRoot string) (Location, bool) {
	lineNum, ok := parseNumber(line)
	if !ok {
		return Location{}, false
	}
	colNum, ok := parseNumber(col)
	if !ok {
		return Location{}, false
	}
	return Location{
		File: NormalizePath(file, sourceRoot),
		Line: lineNum,
		Col:  colNum,
	}, true
}

// parseNumber parses a run of digits. Values too large for an int are
// clamped to math.MaxInt so the annotation is still emitted.
func parseNumber(digits string) (int, bool) {
	n, err := strconv.Atoi(digits)
	if err == nil {
		return n, true
	}
	if errors.Is(err, strconv.ErrRange) {
		return math.MaxInt, true
	}
	return 0, false
}

// findEnd looks for the caret marker below the diagnostic at index i
func findEnd(lines []string, i int, loc Location) *Range {
	if i+markerOffset >= len(lines) {
		return nil
	}
	marker := lines[i+markerOffset]
	if !markerPattern.MatchString(marker) {
		return nil
	}
	width := len(strings.TrimSpace(marker))
	endCol := loc.Col + width
	if loc.Col > math.MaxInt-width {
		endCol = math.MaxInt
	}
	return &Range{
		Line: loc.Line,
		Col:  endCol,
	}
}
