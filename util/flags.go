package util

// Per-node search state with a default value. Reset restores every
// touched entry to the default without reallocating.
type Flags[T any] struct {
	flags   Array[T]
	touched List[int32]
	dirty   Array[bool]
	_null   T
}

func NewFlags[T any](size int32, null T) Flags[T] {
	flags := NewArray[T](int(size))
	for i := range flags {
		flags[i] = null
	}
	return Flags[T]{
		flags:   flags,
		touched: NewList[int32](100),
		dirty:   NewArray[bool](int(size)),
		_null:   null,
	}
}

// Returns a pointer into the flag storage, valid until the next Reset.
func (self *Flags[T]) Get(id int32) *T {
	if !self.dirty[id] {
		self.dirty[id] = true
		self.touched.Add(id)
	}
	return &self.flags[id]
}

func (self *Flags[T]) Reset() {
	for _, id := range self.touched {
		self.flags[id] = self._null
		self.dirty[id] = false
	}
	self.touched = self.touched[:0]
}
