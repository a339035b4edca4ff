// Package annotate renders parsed clang-tidy annotations as GitHub Actions
// workflow commands.
package annotate

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/githubnext/gh-tidy-annotate/pkg/tidy"
)

const (
	// escapedNewline is the workflow command encoding of a line break
	escapedNewline = "%0A"
	// checkSeparator joins check names in a title. The comma is encoded so
	// it is not read as a property separator.
	checkSeparator = "%2C "
	fixesHeader    = escapedNewline + "Fixes:"
	noteBullet     = escapedNewline + "- "
)

type property struct {
	key   string
	value string
}

// Emit writes one workflow command per annotation, in order
func Emit(w io.Writer, annotations []tidy.Annotation) error {
	for _, a := range annotations {
		if _, err := fmt.Fprintln(w, Format(a)); err != nil {
			return fmt.Errorf("failed to write annotation: %w", err)
		}
	}
	return nil
}

// Format renders an annotation as `::level key=value,...::message`
func Format(a tidy.Annotation) string {
	loc := a.Position()
	props := []property{
		{"file", loc.File},
		{"line", strconv.Itoa(loc.Line)},
		{"col", strconv.Itoa(loc.Col)},
	}

	var message strings.Builder
	message.WriteString(Capitalize(a.Text()))

	switch v := a.(type) {
	case *tidy.Diagnostic:
		if v.End != nil {
			props = append(props,
				property{"endLine", strconv.Itoa(v.End.Line)},
				property{"endColumn", strconv.Itoa(v.End.Col)},
			)
		}
		if len(v.Checks) > 0 {
			props = append(props, property{"title", strings.Join(v.Checks, checkSeparator)})
		}
		if len(v.Notes) > 0 {
			message.WriteString(fixesHeader)
			for _, note := range v.Notes {
				message.WriteString(noteBullet)
				message.WriteString(Capitalize(note))
			}
		}
	case *tidy.Note:
		if v.Title != "" {
			props = append(props, property{"title", v.Title})
		}
	}

	args := make([]string, len(props))
	for i, p := range props {
		args[i] = p.key + "=" + p.value
	}

	return fmt.Sprintf("::%s %s::%s", a.Level(), strings.Join(args, ","), message.String())
}

// Capitalize upper-cases the first letter of s and leaves the rest untouched
func Capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}
