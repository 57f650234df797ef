// Package img embeds the display's PBM icon assets: one bitmap per
// OpenWeatherMap icon family plus the four sensor glyphs.
package img

import "embed"

//go:embed *.pbm
var FS embed.FS
