// Package host provides the capability interfaces through which primer
// touches the machine it is bootstrapping: subprocess execution (Runner)
// and executable lookup on an explicit search path (SearchPath).
//
// Every external call the orchestrator makes — package manager
// invocations, git clone, uv, the downstream server launch — goes
// through a Runner. Tests substitute fake Runners to assert call
// sequencing and idempotence without touching a real host.
//
// SearchPath is a value, not ambient process state. When the resolver
// bootstraps uv it prepends uv's bin directory to the SearchPath value
// it returns, and later calls receive that value explicitly. The
// process environment's PATH variable is never mutated.
package host
