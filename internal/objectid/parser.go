package objectid

import (
	"fmt"
	"strings"
)

// forbiddenChars can never appear in an identifier because the project file
// dialect would need to quote them.
const forbiddenChars = " \t\r\n\"'{}()=;,/*"

// Parse validates a permanent identifier read from a project file.
func Parse(raw string) (ID, error) {
	if raw == "" {
		return "", fmt.Errorf("identifier cannot be empty")
	}
	if i := strings.IndexAny(raw, forbiddenChars); i >= 0 {
		return "", fmt.Errorf("identifier %q contains invalid character %q", raw, raw[i])
	}
	id := ID(raw)
	if id.IsTemporary() {
		return "", fmt.Errorf("identifier %q is temporary and cannot be persisted", raw)
	}
	return id, nil
}
