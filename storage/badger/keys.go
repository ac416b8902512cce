package badger

import "encoding/binary"

// Key layout: documents live under a single prefix with a big-endian
// position suffix so iteration returns them in insertion order.
const documentPrefix = "document:"

func documentKey(position uint32) []byte {
	key := make([]byte, len(documentPrefix)+4)
	copy(key, documentPrefix)
	binary.BigEndian.PutUint32(key[len(documentPrefix):], position)
	return key
}
