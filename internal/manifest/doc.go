// Package manifest defines what primer bootstraps: the downstream
// repository, the prerequisite tools with their per-package-manager
// names, the Python minimum version, the .env layout, the port range,
// and the server launch command.
//
// The built-in defaults reproduce the values the original bootstrap
// scripts hardcoded. A project may override them with a primer.yaml (or
// primer.jsonc — JSON with comments, parsed via github.com/tidwall/jsonc)
// in the working directory; absent fields keep their defaults.
package manifest
