package types

// Category names a homogeneous agent fleet.
//
// The category selects the agent list and the cluster count from the world
// model and namespaces persisted allocator state.
type Category string

// Built-in agent categories.
const (
	FireBrigade   Category = "fire_brigade"
	PoliceForce   Category = "police_force"
	AmbulanceTeam Category = "ambulance_team"
)

// SiteKind names a kind of candidate cluster site on the map.
type SiteKind string

// Built-in site kinds.
const (
	SiteRoad            SiteKind = "road"
	SiteHydrant         SiteKind = "hydrant"
	SiteBuilding        SiteKind = "building"
	SiteGasStation      SiteKind = "gas_station"
	SiteRefuge          SiteKind = "refuge"
	SitePoliceOffice    SiteKind = "police_office"
	SiteFireStation     SiteKind = "fire_station"
	SiteAmbulanceCentre SiteKind = "ambulance_centre"
)

// AllSiteKinds returns every built-in site kind in a fixed order.
func AllSiteKinds() []SiteKind {
	return []SiteKind{
		SiteRoad,
		SiteHydrant,
		SiteBuilding,
		SiteGasStation,
		SiteRefuge,
		SitePoliceOffice,
		SiteFireStation,
		SiteAmbulanceCentre,
	}
}

// Valid reports whether k is one of the built-in site kinds.
func (k SiteKind) Valid() bool {
	for _, known := range AllSiteKinds() {
		if k == known {
			return true
		}
	}

	return false
}
