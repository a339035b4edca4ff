package tidy

// Level is the annotation level used by the workflow command protocol
type Level string

const (
	LevelError   Level = "error"
	LevelWarning Level = "warning"
	LevelNotice  Level = "notice"
)

// NoteTitle is the title given to notes that are not attached to a diagnostic
const NoteTitle = "note"

// Location identifies a position in a source file. Line and Col are 1-based.
type Location struct {
	File string
	Line int
	Col  int
}

// Range is the end of a diagnostic span, derived from the marker line
type Range struct {
	Line int
	Col  int
}

// Annotation is either a *Diagnostic or a *Note
type Annotation interface {
	Level() Level
	Position() Location
	Text() string
}

// Diagnostic is a warning or error reported by clang-tidy
type Diagnostic struct {
	Severity Level
	Location Location
	End      *Range // nil when no marker line was found
	Checks   []string
	Message  string
	Notes    []string // follow-up notes reported at the same location
}

func (d *Diagnostic) Level() Level       { return d.Severity }
func (d *Diagnostic) Position() Location { return d.Location }
func (d *Diagnostic) Text() string       { return d.Message }

// Note is a clang-tidy note that could not be attached to the preceding diagnostic
type Note struct {
	Location Location
	Title    string
	Message  string
}

func (n *Note) Level() Level       { return LevelNotice }
func (n *Note) Position() Location { return n.Location }
func (n *Note) Text() string       { return n.Message }
