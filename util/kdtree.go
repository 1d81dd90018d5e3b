package util

import (
	"math"

	"golang.org/x/exp/slices"
)

//*******************************************
// kd-tree
//*******************************************

type _KDNode[T any] struct {
	point []float64
	value T
	order int
	axis  int
	left  int
	right int
}

// Static kd-tree built from all points at once. Nearest-neighbour queries
// use squared euclidean distance; equal distances resolve to the point
// inserted first.
type KDTree[T any] struct {
	dim   int
	nodes List[_KDNode[T]]
	root  int
}

func BuildKDTree[T any](dim int, points Array[[]float64], values Array[T]) KDTree[T] {
	tree := KDTree[T]{
		dim:   dim,
		nodes: NewList[_KDNode[T]](points.Length()),
		root:  -1,
	}
	indices := NewArray[int](points.Length())
	for i := range indices {
		indices[i] = i
	}
	tree.root = tree._Build(points, values, indices, 0)
	return tree
}

func (self *KDTree[T]) _Build(points Array[[]float64], values Array[T], indices []int, depth int) int {
	if len(indices) == 0 {
		return -1
	}
	axis := depth % self.dim
	slices.SortFunc(indices, func(a, b int) int {
		pa, pb := points[a][axis], points[b][axis]
		if pa < pb {
			return -1
		}
		if pa > pb {
			return 1
		}
		return a - b
	})
	mid := len(indices) / 2
	id := self.nodes.Length()
	self.nodes.Add(_KDNode[T]{
		point: points[indices[mid]],
		value: values[indices[mid]],
		order: indices[mid],
		axis:  axis,
		left:  -1,
		right: -1,
	})
	left := self._Build(points, values, slices.Clone(indices[:mid]), depth+1)
	right := self._Build(points, values, slices.Clone(indices[mid+1:]), depth+1)
	self.nodes[id].left = left
	self.nodes[id].right = right
	return id
}

func (self *KDTree[T]) Length() int {
	return self.nodes.Length()
}

// Returns the value of the point closest to point, false if the tree is empty.
func (self *KDTree[T]) GetNearest(point []float64) (T, bool) {
	return self.GetClosest(point, math.Inf(1))
}

// Returns the value of the point closest to point within max_dist, false if
// there is none.
func (self *KDTree[T]) GetClosest(point []float64, max_dist float64) (T, bool) {
	best := -1
	best_dist := max_dist * max_dist
	self._Search(self.root, point, &best, &best_dist)
	if best == -1 {
		var t T
		return t, false
	}
	return self.nodes[best].value, true
}

func (self *KDTree[T]) _Search(id int, point []float64, best *int, best_dist *float64) {
	if id == -1 {
		return
	}
	node := &self.nodes[id]
	dist := 0.0
	for i := 0; i < self.dim; i++ {
		d := node.point[i] - point[i]
		dist += d * d
	}
	if dist < *best_dist || (dist == *best_dist && (*best == -1 || node.order < self.nodes[*best].order)) {
		*best = id
		*best_dist = dist
	}

	diff := point[node.axis] - node.point[node.axis]
	near, far := node.left, node.right
	if diff > 0 {
		near, far = node.right, node.left
	}
	self._Search(near, point, best, best_dist)
	if diff*diff <= *best_dist {
		self._Search(far, point, best, best_dist)
	}
}
