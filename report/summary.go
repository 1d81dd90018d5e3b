package report

import (
	"github.com/ttpr0/go-catchment/assign"
	"github.com/ttpr0/go-catchment/usage"
	. "github.com/ttpr0/go-catchment/util"
	"golang.org/x/exp/slices"
)

type FacilitySummary struct {
	Label        string `json:"label"`
	Name         string `json:"name"`
	Municipality string `json:"municipality"`
	Assigned     int    `json:"assigned"`
}

type Summary struct {
	RunID       string                `json:"run_id"`
	Origins     int                   `json:"origins"`
	Routed      int                   `json:"routed"`
	Unreachable int                   `json:"unreachable"`
	MaxUsage    int                   `json:"max_usage"`
	Edges       int                   `json:"edges"`
	Tiers       Dict[usage.Tier, int] `json:"tiers"`
	Facilities  List[FacilitySummary] `json:"facilities"`
}

// Facilities are listed once per label, sorted by label.
func BuildSummary(run *Run) Summary {
	routed, unreachable := assign.Summarize(run.Assignments)

	seen := NewDict[string, bool](run.Facilities.Length())
	facilities := NewList[FacilitySummary](run.Facilities.Length())
	for _, facility := range run.Facilities {
		if seen.ContainsKey(facility.Label) {
			continue
		}
		seen[facility.Label] = true
		info := run.FacilityInfo(facility)
		facilities.Add(FacilitySummary{
			Label:        facility.Label,
			Name:         info.Name,
			Municipality: info.Municipality,
			Assigned:     run.Counts[facility.Label],
		})
	}
	slices.SortStableFunc(facilities, func(a, b FacilitySummary) int {
		switch {
		case a.Label < b.Label:
			return -1
		case a.Label > b.Label:
			return 1
		}
		return 0
	})

	return Summary{
		RunID:       run.ID.String(),
		Origins:     run.Origins.Length(),
		Routed:      routed,
		Unreachable: unreachable,
		MaxUsage:    usage.MaxUsage(run.Usage),
		Edges:       run.Usage.Length(),
		Tiers:       usage.CountTiers(run.Tiers),
		Facilities:  facilities,
	}
}
