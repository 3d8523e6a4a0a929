package port

import (
	"fmt"
	"net"
	"time"

	"github.com/mmr-tortoise/primer/internal/model"
)

// Probe is the capability interface for checking whether a TCP port is
// in use on the local host. The Scanner depends on this interface so
// tests can model occupied-port layouts without opening sockets.
type Probe interface {
	// InUse reports whether something is accepting connections on the port.
	InUse(port int) bool
}

// DialProbe is the production Probe: it attempts a TCP connection to
// the loopback interface. A successful dial means a listener is there;
// any dial error (typically "connection refused") means the port is
// treated as available.
type DialProbe struct {
	// Host is the address dialed, loopback by default.
	Host string

	// Timeout bounds each dial attempt so a scan over a quiet range
	// stays fast even when the host drops packets instead of refusing.
	Timeout time.Duration
}

// NewDialProbe creates a DialProbe with loopback defaults.
func NewDialProbe() *DialProbe {
	return &DialProbe{Host: "127.0.0.1", Timeout: 500 * time.Millisecond}
}

// InUse dials the candidate port and reports whether anything answered.
func (p *DialProbe) InUse(port int) bool {
	addr := net.JoinHostPort(p.Host, fmt.Sprintf("%d", port))
	conn, err := net.DialTimeout("tcp", addr, p.Timeout)
	if err != nil {
		return false
	}
	_ = conn.Close()
	return true
}

// Scanner finds the first available port in a range using an injected
// Probe.
type Scanner struct {
	probe Probe
}

// NewScanner creates a Scanner with the given Probe. Pass NewDialProbe()
// for real scans.
func NewScanner(probe Probe) *Scanner {
	return &Scanner{probe: probe}
}

// FindAvailablePort walks r sequentially from Start to End (inclusive)
// and returns the first port the probe reports free.
//
// The scan fails closed: when the whole range is occupied it returns a
// CLIError with the port-exhausted exit code rather than looping or
// picking a port outside the range.
func (s *Scanner) FindAvailablePort(r model.PortRange) (int, error) {
	if err := r.Validate(); err != nil {
		return 0, model.WrapCLIError(model.ExitGeneralError, "invalid port range", err)
	}
	for candidate := r.Start; candidate <= r.End; candidate++ {
		if !s.probe.InUse(candidate) {
			return candidate, nil
		}
	}
	return 0, model.NewCLIError(model.ExitPortExhausted,
		fmt.Sprintf("no available TCP port in range %d-%d", r.Start, r.End))
}

// ProxyPort derives the companion proxy port as port+1.
//
// The derived port is not independently checked for availability. That
// preserves the launch contract the downstream server documents; whether
// the server tolerates a busy proxy port is its contract to state, so
// callers should surface both ports to the user before launching.
func ProxyPort(port int) int {
	return port + 1
}
