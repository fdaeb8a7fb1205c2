package timeseries

import (
	"fmt"
	"strings"
)

// Kind tags one measurement quantity recorded by the grid sensors. It is a
// closed set; anything else coming in over the wire or from config is
// rejected by ParseKind.
type Kind string

const (
	Freq Kind = "freq"
	Vang Kind = "vang"
	Vmag Kind = "vmag"
)

// Kinds returns all valid kinds in a stable order.
func Kinds() []Kind { return []Kind{Freq, Vang, Vmag} }

func (k Kind) Valid() bool {
	return k == Freq || k == Vang || k == Vmag
}

// ParseKind converts a raw string (config, url, json) into a Kind.
func ParseKind(s string) (Kind, error) {
	k := Kind(strings.ToLower(strings.TrimSpace(s)))
	if !k.Valid() {
		return "", fmt.Errorf("unknown measurement kind: %q", s)
	}
	return k, nil
}
