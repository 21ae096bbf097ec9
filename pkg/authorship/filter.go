package authorship

import (
	"strings"

	"github.com/src-d/enry/v2"
)

// FileFilter restricts counting to files whose detected language is in the
// selected set. Detection uses the file path only; blob contents are not
// available to the walker. A nil filter or an empty set admits everything.
type FileFilter struct {
	languages map[string]struct{}
}

// NewLanguageFilter builds a filter from language names as enry spells them
// (case-insensitive, e.g. "Go", "python", "TypeScript"). An empty list
// returns a filter that admits everything.
func NewLanguageFilter(languages []string) *FileFilter {
	set := make(map[string]struct{}, len(languages))

	for _, lang := range languages {
		lang = strings.TrimSpace(lang)
		if lang == "" {
			continue
		}

		set[strings.ToLower(lang)] = struct{}{}
	}

	return &FileFilter{languages: set}
}

// Allow reports whether the file at path should contribute counts. Files
// whose language cannot be identified are rejected when a filter is active,
// since they cannot match any selected language.
func (f *FileFilter) Allow(path string) bool {
	if f == nil || len(f.languages) == 0 {
		return true
	}

	if path == "" {
		return false
	}

	lang := enry.GetLanguage(path, nil)
	if lang == "" {
		return false
	}

	_, ok := f.languages[strings.ToLower(lang)]

	return ok
}
