package vpack

import (
	"bytes"
	"testing"
)

func TestReadFixedWidthIntegers(t *testing.T) {
	buf := []byte{0x2a, 0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07, 0x08, 0x09, 0x0a, 0x0b, 0x0c, 0x0d, 0x0e}
	off := 0

	u8, err := readU8(buf, &off)
	if err != nil || u8 != 0x2a || off != 1 {
		t.Fatalf("readU8: got (%d,%v) off=%d", u8, err, off)
	}

	u16, err := readU16le(buf, &off)
	if err != nil || u16 != 0x0201 || off != 3 {
		t.Fatalf("readU16le: got (%d,%v) off=%d", u16, err, off)
	}

	u32, err := readU32le(buf, &off)
	if err != nil || u32 != 0x06050403 || off != 7 {
		t.Fatalf("readU32le: got (%d,%v) off=%d", u32, err, off)
	}

	u64, err := readU64le(buf, &off)
	if err != nil || u64 != 0x0e0d0c0b0a090807 || off != 15 {
		t.Fatalf("readU64le: got (%d,%v) off=%d", u64, err, off)
	}
}

func TestReadFixedWidthIntegersTruncated(t *testing.T) {
	short := []byte{0x01, 0x02}
	off := 0
	if _, err := readU32le(short, &off); err == nil {
		t.Fatalf("expected truncation error")
	} else if code, _ := CodeOf(err); code != ErrPayloadTruncated {
		t.Fatalf("want ErrPayloadTruncated, got %v", err)
	}
}

func TestAppendRoundTrip(t *testing.T) {
	var buf []byte
	buf = AppendU16le(buf, 0xabcd)
	buf = AppendU32le(buf, 0xdeadbeef)
	buf = AppendU64le(buf, 0x0102030405060708)

	off := 0
	u16, _ := readU16le(buf, &off)
	u32, _ := readU32le(buf, &off)
	u64, _ := readU64le(buf, &off)

	if u16 != 0xabcd || u32 != 0xdeadbeef || u64 != 0x0102030405060708 {
		t.Fatalf("round trip mismatch: %x %x %x", u16, u32, u64)
	}
}

func TestLenPrefixedRoundTrip(t *testing.T) {
	payload := []byte("fee-anchor-script")
	buf := appendLenPrefixed(nil, payload)

	off := 0
	got, err := readLenPrefixed(buf, &off, 0)
	if err != nil {
		t.Fatalf("readLenPrefixed: %v", err)
	}
	if !bytes.Equal(got, payload) {
		t.Fatalf("got %q want %q", got, payload)
	}
	if off != len(buf) {
		t.Fatalf("off %d != len(buf) %d", off, len(buf))
	}
}

func TestLenPrefixedRespectsMaxLen(t *testing.T) {
	payload := []byte("fee-anchor-script")
	buf := appendLenPrefixed(nil, payload)

	off := 0
	_, err := readLenPrefixed(buf, &off, uint64(len(payload)-1))
	code, ok := CodeOf(err)
	if !ok || code != ErrLengthPrefixOverflow {
		t.Fatalf("want ErrLengthPrefixOverflow, got %v", err)
	}
}

func TestLenPrefixedZeroMaxLenMeansUnbounded(t *testing.T) {
	payload := []byte("fee-anchor-script")
	buf := appendLenPrefixed(nil, payload)

	off := 0
	got, err := readLenPrefixed(buf, &off, 0)
	if err != nil {
		t.Fatalf("readLenPrefixed: %v", err)
	}
	if !bytes.Equal(got, payload) {
		t.Fatalf("got %q want %q", got, payload)
	}
}

func TestLenPrefixedOverflow(t *testing.T) {
	// compact-size claims 100 bytes follow, but only 2 are present.
	buf := append(AppendCompactSize(nil, 100), []byte{0x01, 0x02}...)
	off := 0
	_, err := readLenPrefixed(buf, &off, 0)
	code, ok := CodeOf(err)
	if !ok || code != ErrLengthPrefixOverflow {
		t.Fatalf("want ErrLengthPrefixOverflow, got %v", err)
	}
}
