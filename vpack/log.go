package vpack

import "github.com/rs/zerolog"

// effectiveLogger resolves a caller-supplied logger to a usable value: nil
// becomes zerolog.Nop(), so Verify/VerifyJSON stay silent by default and
// never hold any package-level state of their own (spec.md §5: the engine
// is pure over its inputs, safe to invoke concurrently only by cloning
// them).
func effectiveLogger(l *zerolog.Logger) zerolog.Logger {
	if l == nil {
		return zerolog.Nop()
	}
	return *l
}
