// Package provision builds the downstream server's Python environment
// inside a fresh clone: virtual environment, dependencies, Playwright
// browser binaries, and the optional wheel build and global install.
// Everything except the browser-binary download shells out to uv, so
// the steps stay identical to what a user would type by hand.
package provision
