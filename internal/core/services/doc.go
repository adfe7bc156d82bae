// Package services implements the driving port interfaces.
// Services contain the core business logic and orchestrate
// calls to driven ports (adapters).
//
// The Explorer composes three pieces into one control loop:
//
//   - ResultStore: the result set of the last successful search
//   - SelectionController: the selected project and its detail fetch
//   - ViewportPolicy: the map region derived from the result set
//
// Services are pure Go with no CGO or external dependencies.
package services
