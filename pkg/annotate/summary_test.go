package annotate

import (
	"strings"
	"testing"

	"github.com/githubnext/gh-tidy-annotate/pkg/console"
	"github.com/githubnext/gh-tidy-annotate/pkg/tidy"
)

func TestSummarize(t *testing.T) {
	annotations := tidy.Parse([]string{
		"a.cpp:1:1: warning: w1 [check-a,check-b]",
		"a.cpp:1:1: note: fold me",
		"a.cpp:2:1: warning: w2 [check-a]",
		"a.cpp:3:1: error: e1 [check-c]",
		"b.cpp:4:1: note: standalone",
	}, "")

	summary := Summarize(annotations)

	if summary.Total != 4 {
		t.Errorf("Expected total 4, got %d", summary.Total)
	}
	if summary.ByLevel[tidy.LevelWarning] != 2 || summary.ByLevel[tidy.LevelError] != 1 || summary.ByLevel[tidy.LevelNotice] != 1 {
		t.Errorf("Unexpected level counts %v", summary.ByLevel)
	}
	if summary.ByCheck["check-a"] != 2 || summary.ByCheck["check-b"] != 1 || summary.ByCheck["check-c"] != 1 {
		t.Errorf("Unexpected check counts %v", summary.ByCheck)
	}
	if summary.FoldedNotes != 1 {
		t.Errorf("Expected 1 folded note, got %d", summary.FoldedNotes)
	}
}

func TestSummaryTable(t *testing.T) {
	summary := Summarize(tidy.Parse([]string{
		"a.cpp:1:1: warning: w1 [check-b]",
		"a.cpp:2:1: warning: w2 [check-a]",
		"a.cpp:3:1: warning: w3 [check-a]",
	}, ""))

	table := summary.Table()

	if len(table.Rows) != 3 {
		t.Fatalf("Expected 3 rows, got %d: %v", len(table.Rows), table.Rows)
	}
	if table.Rows[0][1] != "warning" || table.Rows[0][2] != "3" {
		t.Errorf("Unexpected level row %v", table.Rows[0])
	}
	if table.Rows[1][1] != "check-a" || table.Rows[2][1] != "check-b" {
		t.Errorf("Expected checks sorted by count, got %v", table.Rows[1:])
	}
	if table.TotalRow[2] != "3" {
		t.Errorf("Expected total 3, got %v", table.TotalRow)
	}

	rendered := console.RenderTable(table)
	if !strings.Contains(rendered, "check-a") || !strings.Contains(rendered, "Count") {
		t.Errorf("Expected rendered table to contain rows and headers, got:\n%s", rendered)
	}
}
