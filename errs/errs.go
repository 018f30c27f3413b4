// Package errs holds the error taxonomy spec.md §7 defines, shared by
// every package in this module so a caller can discriminate failure
// kinds with a single type switch regardless of which package raised
// them, rather than each package rolling its own ad hoc error type.
package errs

import (
	"errors"
	"fmt"
)

// ConfigError reports an incompatible policy-knob combination, an
// unsupported (n, q) pair, or a prime absent from the table. Always
// fatal at setup, never at runtime.
type ConfigError struct {
	Msg string
}

func (e *ConfigError) Error() string { return "config error: " + e.Msg }

// EntropyError reports that the OS entropy source was unavailable when
// a PRNG needed reseeding. Always fatal.
type EntropyError struct {
	Msg string
}

func (e *EntropyError) Error() string { return "entropy error: " + e.Msg }

// EncodeOverflow reports that a coefficient would exceed the int64
// range after scaling. Returned to the caller, who may retry with a
// smaller scale.
type EncodeOverflow struct {
	Index int
	Value float64
}

func (e *EncodeOverflow) Error() string {
	return fmt.Sprintf("encode overflow at slot %d: scaled value %g exceeds int64 range", e.Index, e.Value)
}

// ErrChainExhausted is returned by NextModulus when the cursor is
// already at the last working prime. It is a normal terminal signal,
// not a failure: callers should check for it with errors.Is and treat
// it as "encryption complete", not as an error to surface.
var ErrChainExhausted = errors.New("modulus chain exhausted")

// OracleError reports that the table oracle short-read or has no table
// for the requested (kind, n, q). Always fatal.
type OracleError struct {
	Kind string
	N    int
	Q    uint32
}

func (e *OracleError) Error() string {
	return fmt.Sprintf("oracle error: no %s table for (n=%d, q=%d)", e.Kind, e.N, e.Q)
}

// AssertionError reports an internal invariant violation: the ckks
// encryptors return it when a state-machine method is called out of
// order. It is returned whatever the value of params.Config.Debug,
// which no code reads.
type AssertionError struct {
	Msg string
}

func (e *AssertionError) Error() string { return "assertion failed: " + e.Msg }
