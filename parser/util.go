package parser

//*******************************************
// utility methods
//*******************************************

func _GetDirection(oneway string, junction string, typ RoadType) Direction {
	switch oneway {
	case "yes", "true", "1":
		return FORWARD
	case "-1", "reverse":
		return BACKWARD
	case "no", "false", "0":
		return BOTH
	}
	if junction == "roundabout" || typ.IsImplicitOneway() {
		return FORWARD
	}
	return BOTH
}
