package entd

import "fmt"

// MissingFileError reports a source file that is absent or empty.
type MissingFileError struct {
	Name  string
	Path  string
	Empty bool
}

func (e *MissingFileError) Error() string {
	if e.Empty {
		return fmt.Sprintf("file empty in ENTD extract: %s (%s)", e.Name, e.Path)
	}
	return fmt.Sprintf("file missing from ENTD: %s (%s)", e.Name, e.Path)
}

// MissingColumnError reports an allow-listed column absent from a header.
type MissingColumnError struct {
	File   string
	Column string
}

func (e *MissingColumnError) Error() string {
	return fmt.Sprintf("column %s missing from %s", e.Column, e.File)
}
