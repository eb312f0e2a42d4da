package types

import "context"

// WorldModel supplies the located entities the allocator partitions.
//
// Implementations can query various backends:
//   - Simulation world model: live entity registry
//   - Static: fixed lists for testing
//   - Custom: any map or fleet database
//
// The allocator calls WorldModel once per computation. Returned slices may be in
// any order; the allocator sorts them by EntityID before use.
type WorldModel interface {
	// Sites returns candidate cluster sites whose kind is in kinds.
	//
	// Parameters:
	//   - ctx: Context for cancellation and timeout
	//   - kinds: Allowed site kinds
	//
	// Returns:
	//   - []Locatable: Matching sites
	//   - error: Retrieval error (nil on success)
	Sites(ctx context.Context, kinds []SiteKind) ([]Locatable, error)

	// Agents returns every agent of the given category.
	//
	// Parameters:
	//   - ctx: Context for cancellation and timeout
	//   - category: Agent category
	//
	// Returns:
	//   - []Locatable: Agents of the category
	//   - error: Retrieval error (nil on success)
	Agents(ctx context.Context, category Category) ([]Locatable, error)

	// ClusterCount returns the scenario population of the category, which is
	// the number of clusters the map is divided into.
	//
	// Parameters:
	//   - ctx: Context for cancellation and timeout
	//   - category: Agent category
	//
	// Returns:
	//   - int: Cluster count for the category
	//   - error: Retrieval error (nil on success)
	ClusterCount(ctx context.Context, category Category) (int, error)
}
