package annotate

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/githubnext/gh-tidy-annotate/pkg/tidy"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		name       string
		annotation tidy.Annotation
		expected   string
	}{
		{
			name: "warning with end range and single check",
			annotation: &tidy.Diagnostic{
				Severity: tidy.LevelWarning,
				Location: tidy.Location{File: "/foo/bar.cpp", Line: 10, Col: 4},
				End:      &tidy.Range{Line: 10, Col: 9},
				Checks:   []string{"clang-diagnostic-unused-variable"},
				Message:  "unused variable 'x'",
			},
			expected: "::warning file=/foo/bar.cpp,line=10,col=4,endLine=10,endColumn=9,title=clang-diagnostic-unused-variable::Unused variable 'x'",
		},
		{
			name: "error without end range and several checks",
			annotation: &tidy.Diagnostic{
				Severity: tidy.LevelError,
				Location: tidy.Location{File: "a.cpp", Line: 1, Col: 2},
				Checks:   []string{"check-a", "check-b"},
				Message:  "bad",
			},
			expected: "::error file=a.cpp,line=1,col=2,title=check-a%2C check-b::Bad",
		},
		{
			name: "diagnostic with notes",
			annotation: &tidy.Diagnostic{
				Severity: tidy.LevelWarning,
				Location: tidy.Location{File: "a.cpp", Line: 3, Col: 5},
				Checks:   []string{"modernize-use-nullptr"},
				Message:  "use nullptr",
				Notes:    []string{"replace with nullptr", "see also NULL"},
			},
			expected: "::warning file=a.cpp,line=3,col=5,title=modernize-use-nullptr::Use nullptr%0AFixes:%0A- Replace with nullptr%0A- See also NULL",
		},
		{
			name: "standalone note",
			annotation: &tidy.Note{
				Location: tidy.Location{File: "b.h", Line: 7, Col: 1},
				Title:    tidy.NoteTitle,
				Message:  "previous definition is here",
			},
			expected: "::notice file=b.h,line=7,col=1,title=note::Previous definition is here",
		},
		{
			name: "empty check list still yields a title",
			annotation: &tidy.Diagnostic{
				Severity: tidy.LevelWarning,
				Location: tidy.Location{File: "a.cpp", Line: 1, Col: 1},
				Checks:   []string{""},
				Message:  "x",
			},
			expected: "::warning file=a.cpp,line=1,col=1,title=::X",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Format(tt.annotation); got != tt.expected {
				t.Errorf("Format() =\n%s\nwant\n%s", got, tt.expected)
			}
		})
	}
}

func TestEmitFromLog(t *testing.T) {
	log := `/src/project/foo/bar.cpp:10:4: warning: unused variable 'x' [clang-diagnostic-unused-variable]
    int x = 0;
    ^~~~~
/src/project/foo/bar.cpp:10:4: note: remove it
/src/project/foo/bar.cpp:20:1: note: unrelated note
`
	var buf bytes.Buffer
	if err := Emit(&buf, tidy.ParseText(log, "/src/project")); err != nil {
		t.Fatalf("Emit failed: %v", err)
	}

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	expected := []string{
		"::warning file=/foo/bar.cpp,line=10,col=4,endLine=10,endColumn=9,title=clang-diagnostic-unused-variable::Unused variable 'x'%0AFixes:%0A- Remove it",
		"::notice file=/foo/bar.cpp,line=20,col=1,title=note::Unrelated note",
	}
	if len(lines) != len(expected) {
		t.Fatalf("Expected %d lines, got %d:\n%s", len(expected), len(lines), buf.String())
	}
	for i := range expected {
		if lines[i] != expected[i] {
			t.Errorf("Line %d =\n%s\nwant\n%s", i, lines[i], expected[i])
		}
	}
}

func TestEmitEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := Emit(&buf, nil); err != nil {
		t.Fatalf("Emit failed: %v", err)
	}
	if buf.Len() != 0 {
		t.Errorf("Expected no output, got %q", buf.String())
	}
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("closed") }

func TestEmitWriteError(t *testing.T) {
	annotations := tidy.Parse([]string{"a.cpp:1:1: warning: w [c]"}, "")
	if err := Emit(failingWriter{}, annotations); err == nil {
		t.Error("Expected write error")
	}
}

func TestCapitalize(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"", ""},
		{"a", "A"},
		{"already Capital", "Already Capital"},
		{"keep CamelCase", "Keep CamelCase"},
		{"'quoted' start", "'quoted' start"},
		{"élan", "Élan"},
	}

	for _, tt := range tests {
		if got := Capitalize(tt.input); got != tt.expected {
			t.Errorf("Capitalize(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}
