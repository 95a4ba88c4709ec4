package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// ID identifies an estimate, template, group or row. Entities created on the
// client carry a pending string ID until a remote round-trip replaces it with
// the persisted integer assigned by the backend.
type ID struct {
	pending   string
	persisted int64
	isPersist bool
}

// PendingID wraps a client-generated identifier.
func PendingID(s string) ID {
	return ID{pending: s}
}

// PersistedID wraps a server-assigned identifier.
func PersistedID(n int64) ID {
	return ID{persisted: n, isPersist: true}
}

// ParseID interprets user input. All-digit strings become persisted IDs,
// anything else is treated as pending.
func ParseID(s string) ID {
	if n, err := strconv.ParseInt(s, 10, 64); err == nil && n >= 0 && strconv.FormatInt(n, 10) == s {
		return PersistedID(n)
	}
	return PendingID(s)
}

// IsPersisted reports whether the backend assigned this ID.
func (id ID) IsPersisted() bool {
	return id.isPersist
}

// Int returns the server-assigned integer, if any.
func (id ID) Int() (int64, bool) {
	return id.persisted, id.isPersist
}

// IsZero reports whether the ID is the empty pending ID.
func (id ID) IsZero() bool {
	return !id.isPersist && id.pending == ""
}

// String returns the canonical form used for every comparison.
func (id ID) String() string {
	if id.isPersist {
		return strconv.FormatInt(id.persisted, 10)
	}
	return id.pending
}

// SameID compares two identifiers by their string representation so that a
// pending "42" and a persisted 42 are the same entity.
func SameID(a, b ID) bool {
	return a.String() == b.String()
}

// Equal reports exact equality, kind included. Lookups use SameID.
func (id ID) Equal(o ID) bool {
	return id == o
}

// MarshalJSON encodes persisted IDs as numbers and pending IDs as strings.
func (id ID) MarshalJSON() ([]byte, error) {
	if id.isPersist {
		return []byte(strconv.FormatInt(id.persisted, 10)), nil
	}
	return json.Marshal(id.pending)
}

// UnmarshalJSON accepts a JSON number, a JSON string, or null.
func (id *ID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*id = ID{}
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("decoding id: %w", err)
		}
		*id = PendingID(s)
		return nil
	}
	n, err := strconv.ParseInt(string(data), 10, 64)
	if err != nil {
		// Non-integer numbers keep their textual form.
		var f json.Number
		if jerr := json.Unmarshal(data, &f); jerr != nil {
			return fmt.Errorf("decoding id %s: %w", data, jerr)
		}
		*id = PendingID(f.String())
		return nil
	}
	*id = PersistedID(n)
	return nil
}
