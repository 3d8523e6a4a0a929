// Package port implements free-TCP-port discovery for launching the
// downstream server.
//
// The scan is a linear walk over an inclusive port range. Each candidate
// is probed by attempting a local TCP connection: a refused dial means
// the port is available. This is a connect-test, not a bind-test, so it
// can race with another process binding the port between check and use —
// acceptable for the single-user interactive runs this tool is built
// for, but not safe under concurrent callers.
//
// The server's companion proxy port is derived as port+1 and is
// deliberately not probed on its own; see ProxyPort.
package port
