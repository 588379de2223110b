package badger

import (
	"encoding/binary"
	"time"
)

// Key prefixes for different data types
const (
	manifestKey      = "idxman"
	passageRecPrefix = "pasrec"
	traceRecPrefix   = "trcrec"
	traceRecIDSeq    = "trcrecseq"
)

// makePassagePrefix generates the key prefix holding one index generation.
// Format: prefix:generation
func makePassagePrefix(generation uint64) []byte {
	prefix := passageRecPrefix + ":"
	prefixBytes := []byte(prefix)
	buf := make([]byte, len(prefixBytes)+8)
	offset := copy(buf, prefixBytes)
	// Write in BigEndian order so lexicographic sort works correctly
	binary.BigEndian.PutUint64(buf[offset:], generation)
	return buf
}

// makePassageKey generates a key for one passage within a generation.
// Format: prefix:generation:position
func makePassageKey(generation uint64, position int) []byte {
	genPrefix := makePassagePrefix(generation)
	buf := make([]byte, len(genPrefix)+8)
	offset := copy(buf, genPrefix)
	binary.BigEndian.PutUint64(buf[offset:], uint64(position))
	return buf
}

// makeTraceKey generates a composite key for a retrieval trace.
// Format: prefix:timestamp:seq, BigEndian so keys sort chronologically.
func makeTraceKey(createdAt time.Time, seq uint64) []byte {
	prefix := traceRecPrefix + ":"
	prefixBytes := []byte(prefix)
	buf := make([]byte, len(prefixBytes)+16)
	offset := copy(buf, prefixBytes)
	binary.BigEndian.PutUint64(buf[offset:], uint64(createdAt.UnixMicro()))
	offset += 8
	binary.BigEndian.PutUint64(buf[offset:], seq)
	return buf
}

// makePartialTraceKey generates a partial trace key for range seeks.
func makePartialTraceKey(createdAt time.Time) []byte {
	prefix := traceRecPrefix + ":"
	prefixBytes := []byte(prefix)
	buf := make([]byte, len(prefixBytes)+8)
	offset := copy(buf, prefixBytes)
	binary.BigEndian.PutUint64(buf[offset:], uint64(createdAt.UnixMicro()))
	return buf
}
