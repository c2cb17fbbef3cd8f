// Package styles defines the visual configuration of a fretboard diagram.
//
// A [Config] holds every scalar the layout engine consults: radii, stroke
// widths, text sizes, colors, alpha values, the display density
// ([ShowMode]) and the indicator images drawn above closed and open
// strings. [Default] returns the stock look; [LoadTheme] overlays a TOML
// theme file on top of it.
//
// # Themes
//
// A theme is a flat TOML document using snake_case field names:
//
//	show_mode = "simple"
//	head_radius = 16
//	grid_line_width = 6
//	grid_line_color = "#c8c8c8"
//	note_color = "#ff7043"
//	note_alpha = 230
//
//	[closed_string]
//	builtin = "cross"
//	size = 32
//
//	[empty_string]
//	file = "ring.png"   # resolved relative to the theme file
//	width = 32
//	height = 32
//
// Colors accept #rgb, #rrggbb, #aarrggbb and a few CSS names.
//
// Configs are values: copy one and change a field to derive a variant.
// The engine only reads them.
package styles
