package library

import (
	_ "embed"
	"sync"
)

//go:embed chords.toml
var defaultTOML []byte

var (
	defaultLib     *Library
	defaultLibErr  error
	defaultLibOnce sync.Once
)

// Default returns the built-in library of common open and barre chords.
func Default() *Library {
	defaultLibOnce.Do(func() {
		defaultLib, defaultLibErr = ParseTOML(defaultTOML)
	})
	if defaultLibErr != nil {
		panic(defaultLibErr)
	}
	return defaultLib
}
