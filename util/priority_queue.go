package util

import (
	"golang.org/x/exp/constraints"
)

type _PQEntry[T any, P constraints.Ordered] struct {
	item T
	prio P
}

// Binary min-heap. Items with equal priority are dequeued in a fixed order
// for a fixed sequence of operations.
type PriorityQueue[T any, P constraints.Ordered] struct {
	entries []_PQEntry[T, P]
}

func NewPriorityQueue[T any, P constraints.Ordered](capacity int) PriorityQueue[T, P] {
	return PriorityQueue[T, P]{
		entries: make([]_PQEntry[T, P], 0, capacity),
	}
}

func (self *PriorityQueue[T, P]) Len() int {
	return len(self.entries)
}

func (self *PriorityQueue[T, P]) Enqueue(item T, prio P) {
	self.entries = append(self.entries, _PQEntry[T, P]{item, prio})
	self._Up(len(self.entries) - 1)
}

func (self *PriorityQueue[T, P]) Dequeue() (T, bool) {
	n := len(self.entries)
	if n == 0 {
		var t T
		return t, false
	}
	top := self.entries[0]
	self.entries[0] = self.entries[n-1]
	self.entries = self.entries[:n-1]
	if n > 1 {
		self._Down(0)
	}
	return top.item, true
}

func (self *PriorityQueue[T, P]) Clear() {
	self.entries = self.entries[:0]
}

func (self *PriorityQueue[T, P]) _Up(i int) {
	for i > 0 {
		parent := (i - 1) / 2
		if !(self.entries[i].prio < self.entries[parent].prio) {
			break
		}
		self.entries[i], self.entries[parent] = self.entries[parent], self.entries[i]
		i = parent
	}
}

func (self *PriorityQueue[T, P]) _Down(i int) {
	n := len(self.entries)
	for {
		left := 2*i + 1
		if left >= n {
			break
		}
		smallest := left
		if right := left + 1; right < n && self.entries[right].prio < self.entries[left].prio {
			smallest = right
		}
		if !(self.entries[smallest].prio < self.entries[i].prio) {
			break
		}
		self.entries[i], self.entries[smallest] = self.entries[smallest], self.entries[i]
		i = smallest
	}
}
