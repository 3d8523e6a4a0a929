// Package launch starts the downstream server with the port contract
// the bootstrap negotiated: in stdio mode the server receives the
// scanned listen port and the derived proxy port as flags; in default
// mode it picks its own listener. The server runs in the foreground
// with inherited standard streams until it exits or the context is
// cancelled.
package launch
