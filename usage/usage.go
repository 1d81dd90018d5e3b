package usage

import (
	"errors"

	"github.com/ttpr0/go-catchment/assign"
	"github.com/ttpr0/go-catchment/graph"
	. "github.com/ttpr0/go-catchment/util"
	"golang.org/x/exp/slices"
)

// ErrEmptyUsage is returned when classifying a usage map without entries,
// i.e. no origin could be routed.
var ErrEmptyUsage = errors.New("edge usage is empty")

// Directed node pair traversed consecutively by a route.
type EdgeKey struct {
	From graph.NodeID
	To   graph.NodeID
}

// Number of routes traversing each directed node pair.
type EdgeUsageMap = Dict[EdgeKey, int]

// Number of origins assigned to each facility label.
type FacilityCount = Dict[string, int]

type EdgeTierMap = Dict[EdgeKey, Tier]

//*******************************************
// aggregator
//*******************************************

// Accumulates routes into edge usage and facility counts. The result does
// not depend on the order in which assignments are added or partial
// aggregators merged.
//
// not thread safe, use one instance per worker and Merge the results
type Aggregator struct {
	edges      EdgeUsageMap
	facilities FacilityCount
}

func NewAggregator() *Aggregator {
	return &Aggregator{
		edges:      NewDict[EdgeKey, int](100),
		facilities: NewDict[string, int](10),
	}
}

// Adds a single assignment. Unreachable origins are ignored.
func (self *Aggregator) Add(a assign.Assignment) {
	if !a.Reachable {
		return
	}
	nodes := a.Route.Nodes
	for i := 0; i < len(nodes)-1; i++ {
		self.edges[EdgeKey{nodes[i], nodes[i+1]}] += 1
	}
	self.facilities[a.Facility] += 1
}

// Adds the counts of other to self.
func (self *Aggregator) Merge(other *Aggregator) {
	for key, count := range other.edges {
		self.edges[key] += count
	}
	for label, count := range other.facilities {
		self.facilities[label] += count
	}
}

func (self *Aggregator) EdgeUsage() EdgeUsageMap {
	return self.edges
}
func (self *Aggregator) FacilityCount() FacilityCount {
	return self.facilities
}

//*******************************************
// aggregate and classify
//*******************************************

func Aggregate(assignments Array[assign.Assignment]) (EdgeUsageMap, FacilityCount) {
	agg := NewAggregator()
	for _, a := range assignments {
		agg.Add(a)
	}
	return agg.EdgeUsage(), agg.FacilityCount()
}

// Key-wise sum of two usage maps.
func Merge(a, b EdgeUsageMap) EdgeUsageMap {
	merged := NewDict[EdgeKey, int](a.Length() + b.Length())
	for key, count := range a {
		merged[key] += count
	}
	for key, count := range b {
		merged[key] += count
	}
	return merged
}

func MaxUsage(usage EdgeUsageMap) int {
	max_usage := 0
	for _, count := range usage {
		if count > max_usage {
			max_usage = count
		}
	}
	return max_usage
}

// Tier of every edge in usage relative to the busiest edge.
func Classify(usage EdgeUsageMap) (EdgeTierMap, error) {
	if usage.Length() == 0 {
		return nil, ErrEmptyUsage
	}
	max_usage := MaxUsage(usage)
	tiers := NewDict[EdgeKey, Tier](usage.Length())
	for key, count := range usage {
		tiers[key] = ClassifyUsage(count, max_usage)
	}
	return tiers, nil
}

// Number of edges per tier.
func CountTiers(tiers EdgeTierMap) Dict[Tier, int] {
	counts := NewDict[Tier, int](len(TIERS))
	for _, tier := range TIERS {
		counts[tier] = 0
	}
	for _, tier := range tiers {
		counts[tier] += 1
	}
	return counts
}

// Keys of usage ordered by (From, To).
func SortedKeys(usage EdgeUsageMap) List[EdgeKey] {
	keys := NewList[EdgeKey](usage.Length())
	for key := range usage {
		keys.Add(key)
	}
	slices.SortFunc(keys, func(a, b EdgeKey) int {
		if a.From != b.From {
			if a.From < b.From {
				return -1
			}
			return 1
		}
		if a.To < b.To {
			return -1
		}
		if a.To > b.To {
			return 1
		}
		return 0
	})
	return keys
}
