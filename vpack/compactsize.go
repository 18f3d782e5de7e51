package vpack

// CompactSize is a Bitcoin-style variable-length integer encoding: values
// below 0xfd encode as a single byte; 0xfd/0xfe/0xff prefix a u16/u32/u64.
// Decoders MUST reject non-minimal encodings (spec.md §4.1, §8).
type CompactSize uint64

// Encode returns the canonical CompactSize encoding of cs.
func (cs CompactSize) Encode() []byte {
	return AppendCompactSize(nil, uint64(cs))
}

// AppendCompactSize encodes n in Bitcoin-style CompactSize and appends to dst.
func AppendCompactSize(dst []byte, n uint64) []byte {
	switch {
	case n < 0xfd:
		return append(dst, byte(n))
	case n <= 0xffff:
		dst = append(dst, 0xfd)
		return AppendU16le(dst, uint16(n))
	case n <= 0xffff_ffff:
		dst = append(dst, 0xfe)
		return AppendU32le(dst, uint32(n))
	default:
		dst = append(dst, 0xff)
		return AppendU64le(dst, n)
	}
}

// EncodeCompactSize encodes n as a CompactSize varint and returns the bytes.
func EncodeCompactSize(n uint64) []byte {
	return AppendCompactSize(nil, n)
}

// DecodeCompactSize decodes one CompactSize value from the front of buf,
// returning the value and the number of bytes consumed. Non-minimal
// encodings return ErrNonCanonicalVarint.
func DecodeCompactSize(buf []byte) (uint64, int, error) {
	off := 0
	v, err := readCompactSize(buf, &off)
	if err != nil {
		return 0, 0, err
	}
	return v, off, nil
}

// readCompactSize decodes a CompactSize value from b at *off, advancing *off
// past the bytes consumed.
func readCompactSize(b []byte, off *int) (uint64, error) {
	tag, err := readU8(b, off)
	if err != nil {
		return 0, err
	}

	switch {
	case tag < 0xfd:
		return uint64(tag), nil
	case tag == 0xfd:
		v, err := readU16le(b, off)
		if err != nil {
			return 0, err
		}
		if v < 0xfd {
			return 0, vperr(ErrNonCanonicalVarint, "non-minimal CompactSize (0xfd)")
		}
		return uint64(v), nil
	case tag == 0xfe:
		v, err := readU32le(b, off)
		if err != nil {
			return 0, err
		}
		if v <= 0xffff {
			return 0, vperr(ErrNonCanonicalVarint, "non-minimal CompactSize (0xfe)")
		}
		return uint64(v), nil
	default: // tag == 0xff
		v, err := readU64le(b, off)
		if err != nil {
			return 0, err
		}
		if v <= 0xffff_ffff {
			return 0, vperr(ErrNonCanonicalVarint, "non-minimal CompactSize (0xff)")
		}
		return v, nil
	}
}
