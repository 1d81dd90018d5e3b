package parser

import (
	"github.com/ttpr0/go-catchment/graph"
	. "github.com/ttpr0/go-catchment/util"
)

//*******************************************
// connected components
//*******************************************

// Weakly connected component of every node, components are numbered by
// their first node.
func ConnectedComponents(nodes Array[graph.Node], edges Array[graph.Edge]) Array[int32] {
	index := NewDict[graph.NodeID, int32](nodes.Length())
	parent := NewArray[int32](nodes.Length())
	for i, node := range nodes {
		index[node.ID] = int32(i)
		parent[i] = int32(i)
	}
	find := func(n int32) int32 {
		for parent[n] != n {
			parent[n] = parent[parent[n]]
			n = parent[n]
		}
		return n
	}
	for _, edge := range edges {
		a, ok_a := index[edge.From]
		b, ok_b := index[edge.To]
		if !ok_a || !ok_b {
			continue
		}
		root_a, root_b := find(a), find(b)
		if root_a == root_b {
			continue
		}
		// smaller index becomes the root
		if root_a < root_b {
			parent[root_b] = root_a
		} else {
			parent[root_a] = root_b
		}
	}
	groups := NewArray[int32](nodes.Length())
	for i := range nodes {
		groups[i] = find(int32(i))
	}
	return groups
}

// Drops all nodes and edges outside of the largest weakly connected
// component. On equal sizes the component containing the first node wins.
func RetainLargestComponent(nodes Array[graph.Node], edges Array[graph.Edge]) (Array[graph.Node], Array[graph.Edge]) {
	if nodes.Length() == 0 {
		return nodes, edges
	}
	groups := ConnectedComponents(nodes, edges)
	max_group := GetMostCommon(groups)

	keep := NewDict[graph.NodeID, bool](nodes.Length())
	kept_nodes := NewList[graph.Node](nodes.Length())
	for i, node := range nodes {
		if groups[i] == max_group {
			keep[node.ID] = true
			kept_nodes.Add(node)
		}
	}
	kept_edges := NewList[graph.Edge](edges.Length())
	for _, edge := range edges {
		if keep[edge.From] && keep[edge.To] {
			kept_edges.Add(edge)
		}
	}
	return Array[graph.Node](kept_nodes), Array[graph.Edge](kept_edges)
}

// Most frequent value of arr, ties go to the value occurring first.
func GetMostCommon[T comparable](arr Array[T]) T {
	counts := NewDict[T, int](10)
	for _, val := range arr {
		counts[val] += 1
	}
	var max_val T
	max_count := 0
	for _, val := range arr {
		if counts[val] > max_count {
			max_count = counts[val]
			max_val = val
		}
	}
	return max_val
}
