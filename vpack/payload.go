package vpack

// Prefix is the V-PACK prefix section (spec.md §3): an optional asset id,
// the L1 anchor outpoint, and the fee-anchor script (required non-empty for
// Variant 0x04).
type Prefix struct {
	AssetID         *[32]byte
	AnchorOutpoint  OutPoint
	FeeAnchorScript []byte
}

// VtxoLeaf is the tree's bottom-most node: the vUTXO being verified.
type VtxoLeaf struct {
	Amount       uint64
	Vout         uint32
	Sequence     uint32
	Expiry       uint32
	ExitDelta    uint16
	ScriptPubKey []byte
}

// SiblingNode is a co-spend output at one reconstructed level that is not
// itself on the path to the leaf; only its hash is reference material, its
// value/script are authoritative for reconstruction.
type SiblingNode struct {
	Hash   [32]byte
	Value  uint64
	Script []byte
}

// GenesisItem is one level of the reconstruction path: for Variant 0x03 it
// is a chain link; for Variant 0x04 it is a tree level.
type GenesisItem struct {
	Siblings          []SiblingNode
	ParentIndex       uint32
	Sequence          uint32
	ChildAmount       uint64
	ChildScriptPubKey []byte
	Signature         *[64]byte
}

// Tree is the canonical VPackTree: the leaf plus the path, ordered
// anchor-to-leaf (root first) for both variants — see chain.go/tree.go.
type Tree struct {
	Leaf VtxoLeaf
	Path []GenesisItem
}

// Container is a fully decoded V-PACK file: header + prefix + tree.
type Container struct {
	Header Header
	Prefix Prefix
	Tree   Tree
}

func encodePrefix(p Prefix, flags uint8) []byte {
	var out []byte
	if flags&FlagAssetIDPresent != 0 && p.AssetID != nil {
		out = append(out, p.AssetID[:]...)
	}
	out = append(out, p.AnchorOutpoint.Hash[:]...)
	out = AppendU32le(out, p.AnchorOutpoint.Vout)
	out = appendLenPrefixed(out, p.FeeAnchorScript)
	return out
}

func decodePrefix(b []byte, off *int, flags uint8, maxScriptLen uint64) (Prefix, error) {
	var p Prefix
	if flags&FlagAssetIDPresent != 0 {
		raw, err := readBytes(b, off, 32)
		if err != nil {
			return p, err
		}
		var id [32]byte
		copy(id[:], raw)
		p.AssetID = &id
	}
	hashBytes, err := readBytes(b, off, 32)
	if err != nil {
		return p, err
	}
	anchorHash, err := hashFromCanonical(hashBytes)
	if err != nil {
		return p, err
	}
	vout, err := readU32le(b, off)
	if err != nil {
		return p, err
	}
	p.AnchorOutpoint = OutPoint{Hash: anchorHash, Vout: vout}
	script, err := readLenPrefixed(b, off, maxScriptLen)
	if err != nil {
		return p, err
	}
	p.FeeAnchorScript = append([]byte(nil), script...)
	return p, nil
}

func encodeLeaf(l VtxoLeaf) []byte {
	var out []byte
	out = AppendU64le(out, l.Amount)
	out = appendLenPrefixed(out, l.ScriptPubKey)
	out = AppendU32le(out, l.Vout)
	out = AppendU32le(out, l.Sequence)
	out = AppendU32le(out, l.Expiry)
	out = AppendU16le(out, l.ExitDelta)
	return out
}

func decodeLeaf(b []byte, off *int, maxScriptLen uint64) (VtxoLeaf, error) {
	var l VtxoLeaf
	amount, err := readU64le(b, off)
	if err != nil {
		return l, err
	}
	script, err := readLenPrefixed(b, off, maxScriptLen)
	if err != nil {
		return l, err
	}
	vout, err := readU32le(b, off)
	if err != nil {
		return l, err
	}
	seq, err := readU32le(b, off)
	if err != nil {
		return l, err
	}
	expiry, err := readU32le(b, off)
	if err != nil {
		return l, err
	}
	exitDelta, err := readU16le(b, off)
	if err != nil {
		return l, err
	}
	l.Amount = amount
	l.ScriptPubKey = append([]byte(nil), script...)
	l.Vout = vout
	l.Sequence = seq
	l.Expiry = expiry
	l.ExitDelta = exitDelta
	return l, nil
}

func encodeSibling(s SiblingNode) []byte {
	var out []byte
	out = append(out, s.Hash[:]...)
	out = AppendU64le(out, s.Value)
	out = appendLenPrefixed(out, s.Script)
	return out
}

func decodeSibling(b []byte, off *int, maxScriptLen uint64) (SiblingNode, error) {
	var s SiblingNode
	hashBytes, err := readBytes(b, off, 32)
	if err != nil {
		return s, err
	}
	copy(s.Hash[:], hashBytes)
	value, err := readU64le(b, off)
	if err != nil {
		return s, err
	}
	script, err := readLenPrefixed(b, off, maxScriptLen)
	if err != nil {
		return s, err
	}
	s.Value = value
	s.Script = append([]byte(nil), script...)
	return s, nil
}

func encodeGenesisItem(g GenesisItem) []byte {
	var out []byte
	out = AppendCompactSize(out, uint64(len(g.Siblings)))
	for _, s := range g.Siblings {
		out = append(out, encodeSibling(s)...)
	}
	out = AppendU32le(out, g.ParentIndex)
	out = AppendU32le(out, g.Sequence)
	out = AppendU64le(out, g.ChildAmount)
	out = appendLenPrefixed(out, g.ChildScriptPubKey)
	if g.Signature == nil {
		out = append(out, 0)
	} else {
		out = append(out, 1)
		out = append(out, g.Signature[:]...)
	}
	return out
}

func decodeGenesisItem(b []byte, off *int, maxScriptLen uint64) (GenesisItem, error) {
	var g GenesisItem
	n, err := readCompactSize(b, off)
	if err != nil {
		return g, err
	}
	if n > uint64(len(b)-*off) {
		return g, vperr(ErrLengthPrefixOverflow, "sibling count exceeds remaining bytes")
	}
	g.Siblings = make([]SiblingNode, 0, n)
	for i := uint64(0); i < n; i++ {
		s, err := decodeSibling(b, off, maxScriptLen)
		if err != nil {
			return g, err
		}
		g.Siblings = append(g.Siblings, s)
	}
	parentIndex, err := readU32le(b, off)
	if err != nil {
		return g, err
	}
	if parentIndex > uint32(len(g.Siblings)) {
		return g, vperrf(ErrReconstructionFailure, "parent_index %d exceeds sibling slot range [0,%d]", parentIndex, len(g.Siblings))
	}
	seq, err := readU32le(b, off)
	if err != nil {
		return g, err
	}
	childAmount, err := readU64le(b, off)
	if err != nil {
		return g, err
	}
	childScript, err := readLenPrefixed(b, off, maxScriptLen)
	if err != nil {
		return g, err
	}
	sigTag, err := readU8(b, off)
	if err != nil {
		return g, err
	}
	var sig *[64]byte
	switch sigTag {
	case 0:
		sig = nil
	case 1:
		raw, err := readBytes(b, off, 64)
		if err != nil {
			return g, err
		}
		var s [64]byte
		copy(s[:], raw)
		sig = &s
	default:
		return g, vperrf(ErrMalformedHeader, "invalid signature tag %d", sigTag)
	}

	g.ParentIndex = parentIndex
	g.Sequence = seq
	g.ChildAmount = childAmount
	g.ChildScriptPubKey = append([]byte(nil), childScript...)
	g.Signature = sig
	return g, nil
}

func encodeTree(t Tree) []byte {
	var out []byte
	out = append(out, encodeLeaf(t.Leaf)...)
	out = AppendCompactSize(out, uint64(len(t.Path)))
	for _, g := range t.Path {
		out = append(out, encodeGenesisItem(g)...)
	}
	return out
}

func decodeTree(b []byte, off *int, maxDepth uint16, maxScriptLen uint64) (Tree, error) {
	var t Tree
	leaf, err := decodeLeaf(b, off, maxScriptLen)
	if err != nil {
		return t, err
	}
	n, err := readCompactSize(b, off)
	if err != nil {
		return t, err
	}
	if n > uint64(maxDepth) {
		return t, vperrf(ErrDepthExceeded, "path length %d exceeds tree_depth %d", n, maxDepth)
	}
	if n > uint64(len(b)-*off) {
		return t, vperr(ErrLengthPrefixOverflow, "path length exceeds remaining bytes")
	}
	path := make([]GenesisItem, 0, n)
	for i := uint64(0); i < n; i++ {
		g, err := decodeGenesisItem(b, off, maxScriptLen)
		if err != nil {
			return t, err
		}
		path = append(path, g)
	}
	t.Leaf = leaf
	t.Path = path
	return t, nil
}
