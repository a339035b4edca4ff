package annotate

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/githubnext/gh-tidy-annotate/pkg/console"
	"github.com/githubnext/gh-tidy-annotate/pkg/tidy"
)

// Summary holds aggregate counts over a set of annotations
type Summary struct {
	Total       int
	ByLevel     map[tidy.Level]int
	ByCheck     map[string]int
	FoldedNotes int
}

// Summarize counts annotations by level and by check
func Summarize(annotations []tidy.Annotation) Summary {
	summary := Summary{
		Total:   len(annotations),
		ByLevel: make(map[tidy.Level]int),
		ByCheck: make(map[string]int),
	}

	for _, a := range annotations {
		summary.ByLevel[a.Level()]++
		if diag, ok := a.(*tidy.Diagnostic); ok {
			for _, check := range diag.Checks {
				if check != "" {
					summary.ByCheck[check]++
				}
			}
			summary.FoldedNotes += len(diag.Notes)
		}
	}

	return summary
}

type countRow struct {
	name  string
	count int
}

// sortedCounts orders by count descending, then by name
func sortedCounts(counts map[string]int) []countRow {
	rows := make([]countRow, 0, len(counts))
	for name, count := range counts {
		rows = append(rows, countRow{name, count})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].count != rows[j].count {
			return rows[i].count > rows[j].count
		}
		return rows[i].name < rows[j].name
	})
	return rows
}

// Table converts the summary into a console table
func (s Summary) Table() console.TableConfig {
	var rows [][]string
	for _, level := range []tidy.Level{tidy.LevelError, tidy.LevelWarning, tidy.LevelNotice} {
		if count := s.ByLevel[level]; count > 0 {
			rows = append(rows, []string{"level", string(level), strconv.Itoa(count)})
		}
	}
	for _, row := range sortedCounts(s.ByCheck) {
		rows = append(rows, []string{"check", row.name, strconv.Itoa(row.count)})
	}

	return console.TableConfig{
		Title:     fmt.Sprintf("clang-tidy annotations (%d notes folded)", s.FoldedNotes),
		Headers:   []string{"Kind", "Name", "Count"},
		Rows:      rows,
		ShowTotal: true,
		TotalRow:  []string{"total", "", strconv.Itoa(s.Total)},
	}
}
