package domain

import (
	"encoding/binary"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

const idSuffixLen = 6

// DefaultGroupName is used when a group is added without a name.
const DefaultGroupName = "New Group"

// GenerateID returns a client-side identifier: the current time in base 36
// followed by a random suffix. Unique enough for a single session; no
// collision detection is performed.
func GenerateID() string {
	return generateIDAt(time.Now())
}

func generateIDAt(now time.Time) string {
	u := uuid.New()
	suffix := strconv.FormatUint(binary.BigEndian.Uint64(u[8:]), 36)
	if len(suffix) < idSuffixLen {
		suffix = strings.Repeat("0", idSuffixLen-len(suffix)) + suffix
	}
	return strconv.FormatInt(now.UnixMilli(), 36) + suffix[len(suffix)-idSuffixLen:]
}

// NewRow returns a zero-valued row with a fresh pending ID, with the given
// overrides applied.
func NewRow(updates ...RowUpdate) Row {
	r := Row{ID: PendingID(GenerateID())}
	ApplyAll(&r, updates)
	return r
}

// NewGroup returns an empty group with a fresh pending ID.
func NewGroup(name string) Group {
	return Group{
		ID:   PendingID(GenerateID()),
		Name: name,
		Rows: []Row{},
	}
}
