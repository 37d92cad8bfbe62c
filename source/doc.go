// Package source provides built-in roster source implementations.
//
// Roster sources supply the entries an engine loads onto the wheel with
// Engine.LoadRoster. The package includes:
//
//   - Static: Fixed list of entries
//   - File: Entries read from a YAML or JSON file
//
// Custom sources can be implemented by satisfying the types.RosterSource interface.
package source
