// Package library provides named chord collections.
//
// A [Library] is an ordered, read-only set of chords keyed by name. It is
// loaded from TOML or YAML files, or from the built-in set returned by
// [Default]. Entries use the same notation as [chord.Parse]:
//
//	[[chord]]
//	name = "C"
//	frets = "x32010"
//	fingers = "032010"
//
//	[[chord]]
//	name = "F#m/8"
//	frets = "8-10-10-9-8-8"
//
// The YAML form uses a top-level "chords" list with the same keys.
//
// # Stores
//
// A [Store] is a mutable chord collection used by the HTTP server:
//
//   - [MemoryStore]: in-process, seeded from a Library
//   - [FileStore]: one JSON file per chord in a directory
//   - [MongoStore]: a MongoDB collection, for shared deployments
//
// Names are validated with [errors.ValidateChordName] on every write, so a
// name that reaches a store is safe to use as a file name or cache key.
//
// [errors.ValidateChordName]: github.com/matzehuels/chordview/pkg/errors.ValidateChordName
package library
