package trans

import "encoding/binary"

// putLE32 and putLE64 write v to b in little-endian order — the raw
// byte layout packed fixed32/fixed64 repeated elements use with no
// per-element field key.
func putLE32(b []byte, v uint32) { binary.LittleEndian.PutUint32(b, v) }
func putLE64(b []byte, v uint64) { binary.LittleEndian.PutUint64(b, v) }
