package vpack

import "hash/crc32"

// checksum computes the header+payload CRC32 per spec.md §4.1: IEEE 802.3
// polynomial, initial 0xFFFFFFFF, final XOR 0xFFFFFFFF, byte-reversed output
// — i.e. exactly hash/crc32's IEEE table, which is the reference
// implementation the spec names, not a third-party stand-in for it.
func checksum(headerWithoutCRC []byte, payload []byte) uint32 {
	h := crc32.NewIEEE()
	h.Write(headerWithoutCRC)
	h.Write(payload)
	return h.Sum32()
}
