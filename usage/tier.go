package usage

import (
	"encoding/json"
	"errors"
)

//*******************************************
// tiers
//*******************************************

type Tier byte

const (
	VERY_HIGH Tier = 0
	HIGH      Tier = 1
	MEDIUM    Tier = 2
	LOW       Tier = 3
	VERY_LOW  Tier = 4
)

var TIERS = [5]Tier{VERY_HIGH, HIGH, MEDIUM, LOW, VERY_LOW}

func (self Tier) String() string {
	switch self {
	case VERY_HIGH:
		return "very-high"
	case HIGH:
		return "high"
	case MEDIUM:
		return "medium"
	case LOW:
		return "low"
	case VERY_LOW:
		return "very-low"
	default:
		panic("unknown tier")
	}
}

// Display color of the tier, red for the busiest edges down to green.
func (self Tier) Color() string {
	switch self {
	case VERY_HIGH:
		return "rgb(255,0,0)"
	case HIGH:
		return "rgb(255,165,0)"
	case MEDIUM:
		return "rgb(255,255,0)"
	case LOW:
		return "rgb(173,255,47)"
	case VERY_LOW:
		return "rgb(0,128,0)"
	default:
		panic("unknown tier")
	}
}

func (self Tier) MarshalJSON() ([]byte, error) {
	return json.Marshal(self.String())
}
func (self *Tier) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	tier, err := TierFromString(s)
	*self = tier
	return err
}
func (self Tier) MarshalText() ([]byte, error) {
	return []byte(self.String()), nil
}
func (self *Tier) UnmarshalText(data []byte) error {
	tier, err := TierFromString(string(data))
	*self = tier
	return err
}

func TierFromString(s string) (Tier, error) {
	switch s {
	case "very-high":
		return VERY_HIGH, nil
	case "high":
		return HIGH, nil
	case "medium":
		return MEDIUM, nil
	case "low":
		return LOW, nil
	case "very-low":
		return VERY_LOW, nil
	default:
		return VERY_LOW, errors.New("unknown tier")
	}
}

// Tier of an edge used count times when the busiest edge is used max_usage
// times. Thresholds are strict, a count on a threshold falls into the lower
// tier.
func ClassifyUsage(count, max_usage int) Tier {
	c := float64(count)
	m := float64(max_usage)
	if c > 0.8*m {
		return VERY_HIGH
	} else if c > 0.6*m {
		return HIGH
	} else if c > 0.4*m {
		return MEDIUM
	} else if c > 0.2*m {
		return LOW
	}
	return VERY_LOW
}
