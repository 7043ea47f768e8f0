package converter

import (
	"fmt"
	"strings"
)

// ForeignKeyError reports rows whose reference could not be resolved. It is
// returned only when strict foreign keys are enabled.
type ForeignKeyError struct {
	Relation string
	Count    int
	Examples []string
}

func (e *ForeignKeyError) Error() string {
	return fmt.Sprintf("%d unresolved %s references (examples: %s)",
		e.Count, e.Relation, strings.Join(e.Examples, ", "))
}
