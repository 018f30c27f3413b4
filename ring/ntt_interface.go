package ring

// Transformer is the pluggable NTT/INTT strategy spec.md §4.4 calls for:
// four distinct policies for sourcing the twiddle-factor table, all
// behind this one interface so an encryptor is parameterized by policy
// rather than branching on it at every call site. This generalises the
// teacher's ring/ntt_interface.go NumberTheoreticTransformer abstraction
// from "one implementation, swappable for testing" to "several real
// policies, swappable for the target device's memory budget".
type Transformer interface {
	Forward(pol Poly)
	Backward(pol Poly)
}

// OTFTransformer ("on the fly") recomputes every twiddle factor from psi
// by modular exponentiation on every call. It holds no table in memory
// between calls, the policy for the most memory-constrained devices at
// the cost of runtime exponentiations.
type OTFTransformer struct {
	N       int
	Modulus Modulus
	Psi     ZZ
}

func (o OTFTransformer) table() Table {
	return GenerateTable(o.N, o.Modulus, o.Psi)
}

// Forward implements Transformer.
func (o OTFTransformer) Forward(pol Poly) { NTTForward(pol, o.table()) }

// Backward implements Transformer.
func (o OTFTransformer) Backward(pol Poly) { NTTBackward(pol, o.table()) }

// OneShotTransformer derives its table once at construction and holds it
// for the transformer's lifetime: the middle ground for a caller that
// will run many transforms against the same (n, q) but has no table
// oracle round-trip available.
type OneShotTransformer struct {
	t Table
}

// NewOneShotTransformer derives a table from psi and keeps it.
func NewOneShotTransformer(n int, m Modulus, psi ZZ) OneShotTransformer {
	return OneShotTransformer{t: GenerateTable(n, m, psi)}
}

// Forward implements Transformer.
func (o OneShotTransformer) Forward(pol Poly) { NTTForward(pol, o.t) }

// Backward implements Transformer.
func (o OneShotTransformer) Backward(pol Poly) { NTTBackward(pol, o.t) }

// PreloadedTransformer wraps a Table already in hand, typically one
// decoded from the table oracle's wire bytes, so the transformer never
// runs a single modular exponentiation itself.
type PreloadedTransformer struct {
	Table Table
}

// Forward implements Transformer.
func (p PreloadedTransformer) Forward(pol Poly) { NTTForward(pol, p.Table) }

// Backward implements Transformer.
func (p PreloadedTransformer) Backward(pol Poly) { NTTBackward(pol, p.Table) }

// PreloadedLazyTransformer behaves identically to PreloadedTransformer;
// it exists as a distinct type because its Table was constructed from
// MUMO quotients the oracle served directly (ckks.LoadNTTTable with
// fast=true, backed by ntt_fast_roots/intt_fast_roots), rather than
// plain root values the caller would otherwise have to re-derive
// quotients for after loading (ckks.LoadNTTTable with fast=false).
// Keeping the two as separate types lets a caller's policy selection
// stay a type choice instead of a runtime flag.
type PreloadedLazyTransformer struct {
	Table Table
}

// Forward implements Transformer.
func (p PreloadedLazyTransformer) Forward(pol Poly) { NTTForward(pol, p.Table) }

// Backward implements Transformer.
func (p PreloadedLazyTransformer) Backward(pol Poly) { NTTBackward(pol, p.Table) }
