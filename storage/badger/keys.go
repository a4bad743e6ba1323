package badger

import (
	"encoding/binary"
	"fmt"
	"time"
)

// Key prefixes for different data types
const (
	newsPrefix          = "newrec"
	runPrefix           = "runrec"
	runDatePrefix       = "runrecd"
	keywordsAggPrefix   = "kwaggr"
	keywordsDatePrefix  = "kwaggrd"
	sentimentAggPrefix  = "snaggr"
	sentimentDatePrefix = "snaggrd"
)

// makeRecordKey generates a primary key for a record by string ID.
func makeRecordKey(prefix, id string) []byte {
	return []byte(fmt.Sprintf("%s:%s", prefix, id))
}

// makeDateKey generates a composite key for a date index.
// Format: prefix:timestamp:id, with the timestamp written BigEndian so that
// lexicographic key order matches chronological order.
func makeDateKey(prefix string, timestamp time.Time, id string) []byte {
	prefixBytes := []byte(prefix + ":")
	buf := make([]byte, len(prefixBytes)+8+len(id))
	offset := copy(buf, prefixBytes)
	binary.BigEndian.PutUint64(buf[offset:], uint64(timestamp.UnixMicro()))
	offset += 8
	copy(buf[offset:], id)
	return buf
}

// makePartialDateKey generates a partial key for date range scans.
// Format: prefix:timestamp
func makePartialDateKey(prefix string, timestamp time.Time) []byte {
	prefixBytes := []byte(prefix + ":")
	buf := make([]byte, len(prefixBytes)+8)
	offset := copy(buf, prefixBytes)
	binary.BigEndian.PutUint64(buf[offset:], uint64(timestamp.UnixMicro()))
	return buf
}
