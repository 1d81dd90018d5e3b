package graph

//*******************************************
// enums
//*******************************************

type Direction byte

const (
	BACKWARD Direction = 0
	FORWARD  Direction = 1
)

func (self Direction) String() string {
	switch self {
	case BACKWARD:
		return "backward"
	case FORWARD:
		return "forward"
	default:
		panic("unknown direction")
	}
}
