package tidy

import (
	"fmt"
	"path"
)

// Filter drops annotations for ignored checks or paths.
// Patterns use path.Match syntax.
type Filter struct {
	IgnoreChecks []string
	IgnorePaths  []string
}

// IsEmpty reports whether the filter would keep every annotation
func (f Filter) IsEmpty() bool {
	return len(f.IgnoreChecks) == 0 && len(f.IgnorePaths) == 0
}

// Validate checks that every pattern is well formed
func (f Filter) Validate() error {
	for _, pattern := range f.IgnoreChecks {
		if _, err := path.Match(pattern, ""); err != nil {
			return fmt.Errorf("invalid ignore-checks pattern '%s': %w", pattern, err)
		}
	}
	for _, pattern := range f.IgnorePaths {
		if _, err := path.Match(pattern, ""); err != nil {
			return fmt.Errorf("invalid ignore-paths pattern '%s': %w", pattern, err)
		}
	}
	return nil
}

// Apply returns the annotations that survive the filter, in their original order
func (f Filter) Apply(annotations []Annotation) []Annotation {
	if f.IsEmpty() {
		return annotations
	}

	kept := make([]Annotation, 0, len(annotations))
	for _, a := range annotations {
		if matchesAny(f.IgnorePaths, a.Position().File) {
			continue
		}
		if diag, ok := a.(*Diagnostic); ok && f.ignoresAllChecks(diag) {
			continue
		}
		kept = append(kept, a)
	}
	return kept
}

func (f Filter) ignoresAllChecks(diag *Diagnostic) bool {
	if len(f.IgnoreChecks) == 0 || len(diag.Checks) == 0 {
		return false
	}
	for _, check := range diag.Checks {
		if !matchesAny(f.IgnoreChecks, check) {
			return false
		}
	}
	return true
}

func matchesAny(patterns []string, name string) bool {
	for _, pattern := range patterns {
		// Malformed patterns are rejected by Validate
		if ok, _ := path.Match(pattern, name); ok {
			return true
		}
	}
	return false
}
