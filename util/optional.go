package util

//*******************************************
// optional
//*******************************************

type Optional[T any] struct {
	Value T
	ok    bool
}

func Some[T any](value T) Optional[T] {
	return Optional[T]{
		Value: value,
		ok:    true,
	}
}

func None[T any]() Optional[T] {
	return Optional[T]{}
}

func (self Optional[T]) HasValue() bool {
	return self.ok
}

//*******************************************
// tuples
//*******************************************

type Tuple[TA any, TB any] struct {
	A TA
	B TB
}

func MakeTuple[TA any, TB any](a TA, b TB) Tuple[TA, TB] {
	return Tuple[TA, TB]{a, b}
}

type Triple[TA any, TB any, TC any] struct {
	A TA
	B TB
	C TC
}

func MakeTriple[TA any, TB any, TC any](a TA, b TB, c TC) Triple[TA, TB, TC] {
	return Triple[TA, TB, TC]{a, b, c}
}
