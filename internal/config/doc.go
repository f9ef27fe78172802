// Package config loads, validates, and defaults hevcpress configuration.
//
// Configuration lives in a TOML file (default ~/.config/hevcpress/config.toml)
// and is fully optional: every value has a repository default, so the tool
// works with no file present. Sections:
//   - paths: log directory (also hosts the run journal database)
//   - encoding: external binaries, quality defaults, audio settings,
//     recognized extensions, and worker count
//   - logging: output format and level
package config
