package owned

// Pair stores a handle and a policy side by side.
//
// The policy slot is laid out first: a zero-sized policy then occupies no
// space and adds no trailing padding, so a Pair over a stateless policy is
// exactly as large as its handle.
type Pair[H, P any] struct {
	second P
	first  H
}

// NewPair returns a Pair holding first and second.
func NewPair[H, P any](first H, second P) Pair[H, P] {
	return Pair[H, P]{first: first, second: second}
}

// MakePair returns a Pair holding first and the zero value of P.
func MakePair[H, P any](first H) Pair[H, P] {
	return Pair[H, P]{first: first}
}

// First returns the handle slot.
func (p *Pair[H, P]) First() *H {
	return &p.first
}

// Second returns the policy slot.
func (p *Pair[H, P]) Second() *P {
	return &p.second
}

// SwapFirst exchanges the handle slots of p and o.
func (p *Pair[H, P]) SwapFirst(o *Pair[H, P]) {
	p.first, o.first = o.first, p.first
}

// SwapSecond exchanges the policy slots of p and o.
func (p *Pair[H, P]) SwapSecond(o *Pair[H, P]) {
	p.second, o.second = o.second, p.second
}

// Swap exchanges both slots of p and o.
func (p *Pair[H, P]) Swap(o *Pair[H, P]) {
	p.SwapFirst(o)
	p.SwapSecond(o)
}
