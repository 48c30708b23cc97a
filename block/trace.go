package block

import (
	"strconv"
	"strings"
)

// fieldFrame names a field inside a container, e.g. "Level -> name".
func fieldFrame(container, field string) string {
	return container + " -> " + field
}

// elementFrame names an array element, e.g. "Array[U16] -> (element 2)".
func elementFrame(t Type, i int) string {
	return t.Name() + " -> (element " + strconv.Itoa(i) + ")"
}

func joinCycle(names []string) string {
	return strings.Join(names, " -> ")
}
