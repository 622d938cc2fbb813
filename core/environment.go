package core

// Environment identifies an audio environment category
// Closed set; construction sites switch exhaustively so a new category
// fails to compile until every recipe handles it
type Environment int

const (
	EnvNone Environment = iota // No active environment
	EnvStation
	EnvSurface
	EnvHive
	EnvBase
	EnvExtraction
	environmentCount
)

// Environments lists every real category (excludes EnvNone)
var Environments = [...]Environment{
	EnvStation,
	EnvSurface,
	EnvHive,
	EnvBase,
	EnvExtraction,
}

func (e Environment) String() string {
	switch e {
	case EnvNone:
		return "none"
	case EnvStation:
		return "station"
	case EnvSurface:
		return "surface"
	case EnvHive:
		return "hive"
	case EnvBase:
		return "base"
	case EnvExtraction:
		return "extraction"
	default:
		return "invalid"
	}
}

// Valid reports whether e is a real, playable category
func (e Environment) Valid() bool {
	return e > EnvNone && e < environmentCount
}
