package model

type optState uint8

const (
	optAbsent optState = iota
	optNull
	optValue
)

// Opt is a column value extracted from a delivery. It tells apart a field
// the delivery did not mention, a field it explicitly cleared, and a value.
type Opt[T any] struct {
	state optState
	val   T
}

func Some[T any](v T) Opt[T] {
	return Opt[T]{state: optValue, val: v}
}

func Null[T any]() Opt[T] {
	return Opt[T]{state: optNull}
}

// FromPtr is used when reading stored columns, where absent and cleared are
// both NULL.
func FromPtr[T any](p *T) Opt[T] {
	if p == nil {
		return Null[T]()
	}
	return Some(*p)
}

// Present reports whether the delivery mentioned the field, null included.
func (o Opt[T]) Present() bool { return o.state != optAbsent }

func (o Opt[T]) IsNull() bool { return o.state == optNull }

func (o Opt[T]) Get() (T, bool) {
	return o.val, o.state == optValue
}

// Value returns the zero value unless a value is set.
func (o Opt[T]) Value() T {
	return o.val
}

func (o Opt[T]) Ptr() *T {
	if o.state != optValue {
		return nil
	}
	v := o.val
	return &v
}

// Or keeps o when the delivery mentioned it and falls back to prior otherwise.
func (o Opt[T]) Or(prior Opt[T]) Opt[T] {
	if o.Present() {
		return o
	}
	return prior
}
