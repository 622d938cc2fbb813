package core

// Intensity is a discrete music mixing state
// Volume, tempo and brightness scale together per level
type Intensity int

const (
	IntensityAmbient Intensity = iota
	IntensityAlert
	IntensityCombat
	IntensityBoss
	intensityCount
)

func (i Intensity) String() string {
	switch i {
	case IntensityAmbient:
		return "ambient"
	case IntensityAlert:
		return "alert"
	case IntensityCombat:
		return "combat"
	case IntensityBoss:
		return "boss"
	default:
		return "invalid"
	}
}

// Valid reports whether i is a defined intensity level
func (i Intensity) Valid() bool {
	return i >= IntensityAmbient && i < intensityCount
}
