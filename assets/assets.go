// Package assets embeds the level files shipped with the client and relay.
package assets

import (
	"embed"
	"io/fs"
)

// DefaultLevel is the level loaded when none is requested.
const DefaultLevel = "demo"

//go:embed all:levels
var levelFS embed.FS

// Levels returns the embedded filesystem rooted above levels/, so paths look
// like "levels/demo.tmx".
func Levels() fs.FS {
	return levelFS
}

// LevelPath returns the embedded path of a level by stem name.
func LevelPath(name string) string {
	if name == "" {
		name = DefaultLevel
	}
	return "levels/" + name + ".tmx"
}
