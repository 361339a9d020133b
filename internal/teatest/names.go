package teatest

import (
	"fmt"
	"strings"
)

// typeName is the unqualified type of msg, without package or pointer.
func typeName(msg any) string {
	name := fmt.Sprintf("%T", msg)
	name = strings.TrimPrefix(name, "*")
	if i := strings.LastIndex(name, "."); i >= 0 {
		name = name[i+1:]
	}
	return name
}
