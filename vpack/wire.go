package vpack

import "encoding/binary"

// readU8 reads a single byte from b at *off, advancing *off.
func readU8(b []byte, off *int) (uint8, error) {
	if *off+1 > len(b) {
		return 0, vperr(ErrPayloadTruncated, "unexpected EOF (u8)")
	}
	v := b[*off]
	*off++
	return v, nil
}

func readU16le(b []byte, off *int) (uint16, error) {
	if *off+2 > len(b) {
		return 0, vperr(ErrPayloadTruncated, "unexpected EOF (u16le)")
	}
	v := binary.LittleEndian.Uint16(b[*off : *off+2])
	*off += 2
	return v, nil
}

func readU32le(b []byte, off *int) (uint32, error) {
	if *off+4 > len(b) {
		return 0, vperr(ErrPayloadTruncated, "unexpected EOF (u32le)")
	}
	v := binary.LittleEndian.Uint32(b[*off : *off+4])
	*off += 4
	return v, nil
}

func readU64le(b []byte, off *int) (uint64, error) {
	if *off+8 > len(b) {
		return 0, vperr(ErrPayloadTruncated, "unexpected EOF (u64le)")
	}
	v := binary.LittleEndian.Uint64(b[*off : *off+8])
	*off += 8
	return v, nil
}

// readBytes reads n raw bytes from b at *off. It never allocates: the
// returned slice aliases b.
func readBytes(b []byte, off *int, n int) ([]byte, error) {
	if n < 0 {
		return nil, vperr(ErrPayloadTruncated, "negative length")
	}
	if *off+n > len(b) {
		return nil, vperr(ErrPayloadTruncated, "unexpected EOF (bytes)")
	}
	v := b[*off : *off+n]
	*off += n
	return v, nil
}

// readLenPrefixed reads a compact-size length followed by that many bytes,
// bounded by the number of bytes remaining in b (spec.md §4.1: "capped by
// remaining payload bytes") and, when maxLen is non-zero, additionally
// capped by the caller's configured Limits.MaxScriptLen — a defense-in-depth
// bound against a header that declares a huge but technically
// in-range script length.
func readLenPrefixed(b []byte, off *int, maxLen uint64) ([]byte, error) {
	n, err := readCompactSize(b, off)
	if err != nil {
		return nil, err
	}
	remaining := uint64(len(b) - *off)
	if n > remaining {
		return nil, vperr(ErrLengthPrefixOverflow, "length prefix exceeds remaining bytes")
	}
	if maxLen > 0 && n > maxLen {
		return nil, vperrf(ErrLengthPrefixOverflow, "script length %d exceeds configured limit %d", n, maxLen)
	}
	return readBytes(b, off, int(n))
}

// AppendU16le appends v as a 2-byte little-endian value to dst.
func AppendU16le(dst []byte, v uint16) []byte {
	var buf [2]byte
	binary.LittleEndian.PutUint16(buf[:], v)
	return append(dst, buf[:]...)
}

// AppendU32le appends v as a 4-byte little-endian value to dst.
func AppendU32le(dst []byte, v uint32) []byte {
	var buf [4]byte
	binary.LittleEndian.PutUint32(buf[:], v)
	return append(dst, buf[:]...)
}

// AppendU64le appends v as an 8-byte little-endian value to dst.
func AppendU64le(dst []byte, v uint64) []byte {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], v)
	return append(dst, buf[:]...)
}

// appendLenPrefixed appends the compact-size length of b followed by b itself.
func appendLenPrefixed(dst []byte, b []byte) []byte {
	dst = AppendCompactSize(dst, uint64(len(b)))
	return append(dst, b...)
}
