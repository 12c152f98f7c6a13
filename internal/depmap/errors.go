package depmap

import (
	"fmt"
	"strings"
)

// DuplicateScriptError is returned when two files map to the same script
// name, which would make table identity ambiguous.
type DuplicateScriptError struct {
	Name  string
	Paths []string
}

func (e *DuplicateScriptError) Error() string {
	return fmt.Sprintf("duplicate script name '%s' found at: %s", e.Name, strings.Join(e.Paths, ", "))
}
