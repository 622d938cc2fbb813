package core

// SourceType identifies a spatial sound source recipe
type SourceType int

const (
	SourceMachinery SourceType = iota // Continuous low hum
	SourceVent                        // Continuous air hiss
	SourceDrip                        // Periodic water drip
	SourceElectrical                  // Periodic spark crackle
	SourceBeacon                      // Periodic locator ping
	sourceTypeCount
)

func (s SourceType) String() string {
	switch s {
	case SourceMachinery:
		return "machinery"
	case SourceVent:
		return "vent"
	case SourceDrip:
		return "drip"
	case SourceElectrical:
		return "electrical"
	case SourceBeacon:
		return "beacon"
	default:
		return "invalid"
	}
}

// Continuous reports whether the type holds a free-running generator
// Non-continuous types only emit from their periodic trigger
func (s SourceType) Continuous() bool {
	switch s {
	case SourceMachinery, SourceVent:
		return true
	default:
		return false
	}
}

// LayerRole names a layer slot within an environment's soundscape
type LayerRole int

const (
	RoleDrone LayerRole = iota // Base pad, always present
	RoleTexture                // Filtered noise bed
	RoleDetail                 // Scheduled incidental sounds
	RoleEvent                  // Rare scripted accents
	layerRoleCount
)

func (r LayerRole) String() string {
	switch r {
	case RoleDrone:
		return "drone"
	case RoleTexture:
		return "texture"
	case RoleDetail:
		return "detail"
	case RoleEvent:
		return "event"
	default:
		return "invalid"
	}
}

// LayerRoles lists every role in construction order
var LayerRoles = [...]LayerRole{RoleDrone, RoleTexture, RoleDetail, RoleEvent}
