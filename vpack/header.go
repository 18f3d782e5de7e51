package vpack

import "encoding/binary"

const (
	headerSize  = 24
	magicVPK    = "VPK"
	formatVer1  = 0x01
)

// Variant tags the reconstruction algorithm a container's tree section uses.
type Variant uint8

const (
	VariantChain Variant = 0x03 // recursive chain, OutPoint identity
	VariantTree  Variant = 0x04 // fanned-out tree, Hash identity
)

// Flag bits within Header.Flags (header byte 3).
const (
	FlagLZ4          uint8 = 1 << 0
	FlagCompact      uint8 = 1 << 2
	FlagAssetIDPresent uint8 = 1 << 3
)

// AssetType identifies the underlying asset the tree's value is denominated in.
type AssetType uint8

const (
	AssetBTC     AssetType = 0
	AssetTaproot AssetType = 1
	AssetRGB     AssetType = 2
)

// testnetBit is bit 0 of the high-order byte (byte 15, bit 24 of the LE u32)
// of the asset_type header field (bytes 12..16). Open Question 1 in
// spec.md §9 leaves the exact bit placement to the implementer; this choice
// keeps the low byte free for AssetType's 0/1/2 enum and never collides with
// it, while still round-tripping through encode/decode as required.
const testnetBit uint32 = 1 << 24

// Header is the 24-byte V-PACK container header, byte-exact per spec.md §3.
type Header struct {
	Flags      uint8
	Variant    Variant
	TreeArity  uint16
	TreeDepth  uint16
	NodeCount  uint16
	AssetType  AssetType
	IsTestnet  bool
	PayloadLen uint32
	Checksum   uint32
}

// HeaderInfo is the reduced view returned by ParseHeader (spec.md §6):
// enough to identify the anchor and variant without decoding the full tree.
type HeaderInfo struct {
	AnchorTxid  Hash256
	AnchorVout  uint32
	TxVariant   Variant
	IsTestnet   bool
}

// encode serializes h's 24 bytes, excluding the CRC field's final value
// (caller fills Checksum in afterwards once the payload is known).
func (h Header) encode() []byte {
	buf := make([]byte, headerSize)
	copy(buf[0:3], magicVPK)
	buf[3] = h.Flags
	buf[4] = formatVer1
	buf[5] = uint8(h.Variant)
	binary.LittleEndian.PutUint16(buf[6:8], h.TreeArity)
	binary.LittleEndian.PutUint16(buf[8:10], h.TreeDepth)
	binary.LittleEndian.PutUint16(buf[10:12], h.NodeCount)
	assetWord := uint32(h.AssetType)
	if h.IsTestnet {
		assetWord |= testnetBit
	}
	binary.LittleEndian.PutUint32(buf[12:16], assetWord)
	binary.LittleEndian.PutUint32(buf[16:20], h.PayloadLen)
	binary.LittleEndian.PutUint32(buf[20:24], h.Checksum)
	return buf
}

// decodeHeader parses and validates the 24-byte header at the front of b.
// It does not validate payload length against len(b); callers
// (DecodeContainerWithLimits, ParseHeader) do that before slicing the
// payload out.
func decodeHeader(b []byte) (Header, error) {
	var h Header
	if len(b) < headerSize {
		return h, vperrf(ErrMalformedHeader, "header too short: %d bytes", len(b))
	}
	if string(b[0:3]) != magicVPK {
		return h, vperr(ErrMalformedHeader, "bad magic")
	}
	h.Flags = b[3]
	if b[4] != formatVer1 {
		return h, vperrf(ErrMalformedHeader, "unsupported format version %d", b[4])
	}
	variant := Variant(b[5])
	if variant != VariantChain && variant != VariantTree {
		return h, vperrf(ErrMalformedHeader, "unknown variant 0x%02x", b[5])
	}
	h.Variant = variant
	h.TreeArity = binary.LittleEndian.Uint16(b[6:8])
	h.TreeDepth = binary.LittleEndian.Uint16(b[8:10])
	h.NodeCount = binary.LittleEndian.Uint16(b[10:12])
	assetWord := binary.LittleEndian.Uint32(b[12:16])
	h.IsTestnet = assetWord&testnetBit != 0
	assetVal := assetWord &^ testnetBit
	if assetVal > uint32(AssetRGB) {
		return h, vperrf(ErrMalformedHeader, "unknown asset_type %d", assetVal)
	}
	h.AssetType = AssetType(assetVal)
	h.PayloadLen = binary.LittleEndian.Uint32(b[16:20])
	h.Checksum = binary.LittleEndian.Uint32(b[20:24])
	return h, nil
}
