package objectid

import (
	"encoding/hex"
	"fmt"
	"strings"
)

// digestBytes is the number of digest bytes kept in a permanent identifier,
// giving the 24 hex characters the IDE itself writes.
const digestBytes = 12

// Format selects how a permanent identifier is rendered from a digest.
type Format int

const (
	// FormatHex renders 24 uppercase hex characters.
	FormatHex Format = iota
	// FormatPrefixed renders a kind acronym, an underscore and 24 hex characters.
	FormatPrefixed
)

// String returns the configuration spelling of the format.
func (f Format) String() string {
	switch f {
	case FormatHex:
		return "hex"
	case FormatPrefixed:
		return "prefixed"
	default:
		return fmt.Sprintf("Format(%d)", int(f))
	}
}

// ParseFormat maps a configuration value onto a Format.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "hex":
		return FormatHex, nil
	case "prefixed":
		return FormatPrefixed, nil
	default:
		return FormatHex, fmt.Errorf("unknown reference format %q: must be 'hex' or 'prefixed'", s)
	}
}

// FromDigest renders a permanent identifier from a content digest. The digest
// must be at least 12 bytes long.
func FromDigest(f Format, acronym string, sum []byte) (ID, error) {
	if len(sum) < digestBytes {
		return "", fmt.Errorf("digest too short: %d bytes", len(sum))
	}
	body := strings.ToUpper(hex.EncodeToString(sum[:digestBytes]))
	switch f {
	case FormatHex:
		return ID(body), nil
	case FormatPrefixed:
		if acronym == "" {
			acronym = "OBJ"
		}
		return ID(acronym + "_" + body), nil
	default:
		return "", fmt.Errorf("unsupported reference format %v", f)
	}
}
