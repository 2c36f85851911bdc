package badger

import (
	"encoding/binary"
	"fmt"
	"math"
	"time"
)

// Key prefixes for different data types
const (
	contactPrefix        = "conrec"
	contactCreatedPrefix = "conrecc"
	contactNamePrefix    = "conrecn"
)

// makeContactKey generates a key for a contact record by ID.
func makeContactKey(id string) []byte {
	return []byte(fmt.Sprintf("%s:%s", contactPrefix, id))
}

// makeContactCreatedKey generates a composite key for the creation-time
// index. The timestamp is inverted so that lexicographic iteration
// yields newest-first ordering, which is the contract of ListContacts.
// Format: prefix:~timestamp:id
func makeContactCreatedKey(createdAt time.Time, id string) []byte {
	prefix := contactCreatedPrefix + ":"
	buf := make([]byte, len(prefix)+8+len(id))
	offset := copy(buf, prefix)
	// Write in BigEndian order so lexicographic sort works correctly
	binary.BigEndian.PutUint64(buf[offset:], math.MaxUint64-uint64(createdAt.UnixMicro()))
	offset += 8
	copy(buf[offset:], id)
	return buf
}

// makeContactNameKey generates a composite key for the name index.
// Format: prefix:nameKey:id
func makeContactNameKey(nameKey uint64, id string) []byte {
	prefix := contactNamePrefix + ":"
	buf := make([]byte, len(prefix)+8+len(id))
	offset := copy(buf, prefix)
	binary.BigEndian.PutUint64(buf[offset:], nameKey)
	offset += 8
	copy(buf[offset:], id)
	return buf
}

// makePartialContactNameKey generates a partial key for name lookups.
// Format: prefix:nameKey
func makePartialContactNameKey(nameKey uint64) []byte {
	prefix := contactNamePrefix + ":"
	buf := make([]byte, len(prefix)+8)
	offset := copy(buf, prefix)
	binary.BigEndian.PutUint64(buf[offset:], nameKey)
	return buf
}
