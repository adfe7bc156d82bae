// Package domain defines the core business entities for estatemap.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - ProjectSummary: A search hit with a map position
//   - ProjectDetails: The full attributes of one registered project
//   - ResultSet: The ordered projects returned by the last search
//   - Selection: The highlighted project and its detail-fetch state
//   - Viewport: The geographic region the map should frame
//   - Snapshot: A consistent, read-only view of all of the above
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
