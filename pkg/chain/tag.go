package chain

import (
	"strconv"
	"sync"
)

// Tag identifies the concrete type of a record within a chain.
type Tag uint32

// TagNone is reserved, no record type may use it.
const TagNone Tag = 0

var (
	tagNamesMu sync.RWMutex
	tagNames   = map[Tag]string{}
)

// RegisterTagName associates a human readable name with tag. Generated
// packages call it from init, later registrations win.
func RegisterTagName(tag Tag, name string) {
	tagNamesMu.Lock()
	defer tagNamesMu.Unlock()
	tagNames[tag] = name
}

func (t Tag) String() string {
	tagNamesMu.RLock()
	name, ok := tagNames[t]
	tagNamesMu.RUnlock()
	if ok {
		return name
	}
	if t == TagNone {
		return "None"
	}
	return "Tag(" + strconv.FormatUint(uint64(t), 10) + ")"
}
