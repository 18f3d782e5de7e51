package vpack

// DecodeContainer parses a full V-PACK byte stream into a Container,
// validating the header, checksum, and payload per spec.md §4.2 using the
// default Limits.
func DecodeContainer(b []byte) (*Container, error) {
	return DecodeContainerWithLimits(b, DefaultLimits())
}

// DecodeContainerWithLimits is DecodeContainer with caller-supplied bounds
// layered on top of (never looser than) the header's own declared sizes.
func DecodeContainerWithLimits(b []byte, limits Limits) (*Container, error) {
	header, err := decodeHeader(b)
	if err != nil {
		return nil, err
	}
	if uint64(header.PayloadLen)+headerSize > uint64(len(b)) {
		return nil, vperrf(ErrPayloadTruncated, "payload_len %d exceeds available bytes", header.PayloadLen)
	}
	if uint64(header.PayloadLen)+headerSize < uint64(len(b)) {
		return nil, vperr(ErrTrailingBytes, "bytes remain after declared payload_len")
	}
	if limits.MaxPayloadLen > 0 && uint64(header.PayloadLen) > limits.MaxPayloadLen {
		return nil, vperrf(ErrPayloadTruncated, "payload_len %d exceeds configured limit %d", header.PayloadLen, limits.MaxPayloadLen)
	}
	maxDepth := header.TreeDepth
	if limits.MaxTreeDepth > 0 && uint16(limits.MaxTreeDepth) < maxDepth {
		maxDepth = uint16(limits.MaxTreeDepth)
	}

	payload := b[headerSize : headerSize+int(header.PayloadLen)]

	gotCRC := checksum(b[0:20], payload)
	if gotCRC != header.Checksum {
		return nil, vperrf(ErrChecksumMismatch, "got 0x%08x want 0x%08x", gotCRC, header.Checksum)
	}

	off := 0
	prefix, err := decodePrefix(payload, &off, header.Flags, limits.MaxScriptLen)
	if err != nil {
		return nil, err
	}
	if header.Variant == VariantTree && len(prefix.FeeAnchorScript) == 0 {
		return nil, vperr(ErrFeeAnchorMissing, "Variant 0x04 requires non-empty fee_anchor_script")
	}
	tree, err := decodeTree(payload, &off, maxDepth, limits.MaxScriptLen)
	if err != nil {
		return nil, err
	}
	if off != len(payload) {
		return nil, vperr(ErrTrailingBytes, "bytes remain after declared payload fields")
	}

	return &Container{Header: header, Prefix: prefix, Tree: tree}, nil
}

// EncodeContainer serializes c back to its canonical byte form. Payload is
// serialized first so PayloadLen and the checksum can be computed, then the
// header is emitted per spec.md §4.2.
func EncodeContainer(c *Container) ([]byte, error) {
	if c == nil {
		return nil, vperr(ErrMalformedHeader, "nil container")
	}
	h := c.Header
	if c.Prefix.AssetID != nil {
		h.Flags |= FlagAssetIDPresent
	} else {
		h.Flags &^= FlagAssetIDPresent
	}
	if h.Variant == VariantTree && len(c.Prefix.FeeAnchorScript) == 0 {
		return nil, vperr(ErrFeeAnchorMissing, "Variant 0x04 requires non-empty fee_anchor_script")
	}

	payload := encodePrefix(c.Prefix, h.Flags)
	payload = append(payload, encodeTree(c.Tree)...)
	h.PayloadLen = uint32(len(payload))

	headerBytes := h.encode()
	h.Checksum = checksum(headerBytes[0:20], payload)
	headerBytes = h.encode()

	out := make([]byte, 0, len(headerBytes)+len(payload))
	out = append(out, headerBytes...)
	out = append(out, payload...)
	return out, nil
}

// ComputeID reconstructs the tree/chain from c and returns its identity
// without comparing to any expected value (spec.md §6 compute_id). No
// anchor_value check is performed.
func ComputeID(c *Container) (Variant, VtxoId, []PathDetail, error) {
	return computeID(c, nil)
}

func computeID(c *Container, anchorValue *uint64) (Variant, VtxoId, []PathDetail, error) {
	switch c.Header.Variant {
	case VariantChain:
		id, details, err := reconstructChain(c, anchorValue)
		return VariantChain, id, details, err
	case VariantTree:
		id, details, err := reconstructTree(c, anchorValue)
		return VariantTree, id, details, err
	default:
		return 0, VtxoId{}, nil, vperrf(ErrMalformedHeader, "unknown variant 0x%02x", c.Header.Variant)
	}
}

// ParseHeader decodes only enough of b to report the anchor and variant,
// without walking the tree section (spec.md §6 parse_header).
func ParseHeader(b []byte) (HeaderInfo, error) {
	header, err := decodeHeader(b)
	if err != nil {
		return HeaderInfo{}, err
	}
	if uint64(header.PayloadLen)+headerSize > uint64(len(b)) {
		return HeaderInfo{}, vperrf(ErrPayloadTruncated, "payload_len %d exceeds available bytes", header.PayloadLen)
	}
	payload := b[headerSize : headerSize+int(header.PayloadLen)]
	off := 0
	prefix, err := decodePrefix(payload, &off, header.Flags, 0)
	if err != nil {
		return HeaderInfo{}, err
	}
	return HeaderInfo{
		AnchorTxid: prefix.AnchorOutpoint.Hash,
		AnchorVout: prefix.AnchorOutpoint.Vout,
		TxVariant:  header.Variant,
		IsTestnet:  header.IsTestnet,
	}, nil
}
