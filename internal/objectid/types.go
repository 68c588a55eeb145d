package objectid

import (
	"encoding/hex"
	"strings"

	"github.com/google/uuid"
)

// temporaryPrefix marks identifiers that must be fixed before a save.
const temporaryPrefix = "TEMP_"

// ID is the identity of a single object in a project graph.
type ID string

// NewTemporary returns a fresh, process-unique temporary identifier.
func NewTemporary() ID {
	u := uuid.New()
	return ID(temporaryPrefix + strings.ToUpper(hex.EncodeToString(u[:])))
}

// String returns the raw identifier text.
func (id ID) String() string {
	return string(id)
}

// IsZero reports whether the identifier is unset.
func (id ID) IsZero() bool {
	return id == ""
}

// IsTemporary reports whether the identifier is a temporary placeholder.
func (id ID) IsTemporary() bool {
	return strings.HasPrefix(string(id), temporaryPrefix)
}
