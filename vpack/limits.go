package vpack

// Limits bounds parser behavior beyond what a container's own header
// declares, for callers that want defense-in-depth against adversarial
// input (spec.md §5: "tree_depth is an adversarial input"). Zero means "use
// the header's own declared size" for that field.
type Limits struct {
	// MaxTreeDepth caps path length regardless of header.TreeDepth. 0 means
	// trust the header's own tree_depth field.
	MaxTreeDepth uint32
	// MaxPayloadLen caps the declared payload_len. 0 means no extra cap
	// beyond what the available byte slice permits. Every individual
	// length-prefixed field (scripts, signatures) is already bounded by
	// "remaining payload bytes" regardless of this setting (spec.md §4.1).
	MaxPayloadLen uint64
	// MaxScriptLen caps every length-prefixed script field individually
	// (fee_anchor_script, leaf/sibling/genesis-item scriptPubKeys) beyond
	// the "remaining payload bytes" bound those fields already carry. 0
	// means no extra cap: a length-prefixed field that technically fits in
	// the remaining payload is accepted regardless of size.
	MaxScriptLen uint64
}

// DefaultLimits returns the engine's out-of-the-box bounds: no override of
// the header's own tree_depth, and no extra payload or script cap beyond
// the input slice's own length.
func DefaultLimits() Limits {
	return Limits{
		MaxTreeDepth:  0,
		MaxPayloadLen: 0,
		MaxScriptLen:  0,
	}
}
