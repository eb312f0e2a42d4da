package zoner

import "github.com/arloliu/zoner/types"

// Re-export types from the internal types package.
//
// This file provides a stable public API for the library's core types and
// interfaces. It uses type aliases to re-export definitions from the `types`
// subpackage, which contains the actual implementations.
//
// This pattern solves the "import cycle" problem by allowing subpackages to
// depend on `types` without depending on the root `zoner` package, while still
// providing a convenient `zoner.State`, `zoner.Logger`, etc. for users.
type (
	State     = types.State
	EntityID  = types.EntityID
	Point     = types.Point
	Category  = types.Category
	SiteKind  = types.SiteKind
	Locatable = types.Locatable
)

// Re-export interfaces from the internal types package for convenience.
type (
	WorldModel         = types.WorldModel
	Store              = types.Store
	AssignmentStrategy = types.AssignmentStrategy
	RandomSource       = types.RandomSource
	MetricsCollector   = types.MetricsCollector
	Logger             = types.Logger
	Hooks              = types.Hooks
)

// Re-export State constants from the internal types package.
const (
	StateInit      = types.StateInit
	StateComputing = types.StateComputing
	StateReady     = types.StateReady
	StateResumed   = types.StateResumed
)

// Re-export Category constants from the internal types package.
const (
	FireBrigade   = types.FireBrigade
	PoliceForce   = types.PoliceForce
	AmbulanceTeam = types.AmbulanceTeam
)

// Re-export SiteKind constants from the internal types package.
const (
	SiteRoad            = types.SiteRoad
	SiteHydrant         = types.SiteHydrant
	SiteBuilding        = types.SiteBuilding
	SiteGasStation      = types.SiteGasStation
	SiteRefuge          = types.SiteRefuge
	SitePoliceOffice    = types.SitePoliceOffice
	SiteFireStation     = types.SiteFireStation
	SiteAmbulanceCentre = types.SiteAmbulanceCentre
)

// NoCluster is returned by ClusterIndexOf for entities that belong to no cluster.
const NoCluster = -1

// AllSiteKinds returns every built-in site kind.
func AllSiteKinds() []SiteKind {
	return types.AllSiteKinds()
}

// IsConfigurationError reports whether err is a fatal configuration error
// that must not be retried.
func IsConfigurationError(err error) bool {
	return types.IsConfigurationError(err)
}
