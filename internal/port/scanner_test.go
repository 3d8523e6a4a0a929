package port

import (
	"net"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmr-tortoise/primer/internal/model"
)

// fakeProbe models an occupied-port layout and counts probe calls so
// tests can assert scan order and that the proxy port is never probed.
type fakeProbe struct {
	occupied map[int]bool
	probed   []int
}

func (f *fakeProbe) InUse(port int) bool {
	f.probed = append(f.probed, port)
	return f.occupied[port]
}

// TestDialProbe_OccupiedPort verifies that a port with an active
// listener is reported in use. The test starts its own TCP listener on
// an OS-assigned port to avoid hardcoded-port flakiness.
func TestDialProbe_OccupiedPort(t *testing.T) {
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err, "failed to start test listener")
	defer func() { _ = listener.Close() }()

	tcpAddr, ok := listener.Addr().(*net.TCPAddr)
	require.True(t, ok)

	probe := NewDialProbe()
	assert.True(t, probe.InUse(tcpAddr.Port), "port %d has a listener and must report in use", tcpAddr.Port)
}

// TestDialProbe_FreePort verifies that a port nothing listens on is
// reported free. We let the OS assign a port, close the listener, then
// probe the now-free port.
func TestDialProbe_FreePort(t *testing.T) {
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	tcpAddr, ok := listener.Addr().(*net.TCPAddr)
	require.True(t, ok)
	freePort := tcpAddr.Port
	require.NoError(t, listener.Close())

	probe := NewDialProbe()
	assert.False(t, probe.InUse(freePort), "port %d has no listener and must report free", freePort)
}

// TestFindAvailablePort_SkipsOccupied: with 8000 occupied and 8001
// free, the scan returns 8001, and the proxy port derives to 8002.
func TestFindAvailablePort_SkipsOccupied(t *testing.T) {
	probe := &fakeProbe{occupied: map[int]bool{8000: true}}
	scanner := NewScanner(probe)

	port, err := scanner.FindAvailablePort(model.PortRange{Start: 8000, End: 9000})

	require.NoError(t, err)
	assert.Equal(t, 8001, port)
	assert.Equal(t, []int{8000, 8001}, probe.probed, "scan must be sequential from the range start")

	// The proxy port is pure arithmetic — deriving it must not probe.
	assert.Equal(t, 8002, ProxyPort(port))
	assert.Len(t, probe.probed, 2, "deriving the proxy port must not touch the probe")
}

// TestFindAvailablePort_Exhausted: a fully occupied inclusive range
// fails closed with the port-exhausted exit code. The probe counts
// verify both boundaries were actually tested.
func TestFindAvailablePort_Exhausted(t *testing.T) {
	occupied := make(map[int]bool)
	for p := 8000; p <= 8010; p++ {
		occupied[p] = true
	}
	probe := &fakeProbe{occupied: occupied}
	scanner := NewScanner(probe)

	_, err := scanner.FindAvailablePort(model.PortRange{Start: 8000, End: 8010})

	require.Error(t, err)
	var cliErr *model.CLIError
	require.ErrorAs(t, err, &cliErr)
	assert.Equal(t, model.ExitPortExhausted, cliErr.Code)

	assert.Equal(t, 11, len(probe.probed), "all ports including both inclusive bounds must be probed")
	assert.Equal(t, 8000, probe.probed[0])
	assert.Equal(t, 8010, probe.probed[len(probe.probed)-1])
}

// TestFindAvailablePort_SinglePortRange: start == end is a valid
// one-port scan.
func TestFindAvailablePort_SinglePortRange(t *testing.T) {
	probe := &fakeProbe{}
	scanner := NewScanner(probe)

	port, err := scanner.FindAvailablePort(model.PortRange{Start: 8000, End: 8000})

	require.NoError(t, err)
	assert.Equal(t, 8000, port)
}

// TestFindAvailablePort_InvalidRange rejects a backwards range before
// probing anything.
func TestFindAvailablePort_InvalidRange(t *testing.T) {
	probe := &fakeProbe{}
	scanner := NewScanner(probe)

	_, err := scanner.FindAvailablePort(model.PortRange{Start: 9000, End: 8000})

	require.Error(t, err)
	assert.Empty(t, probe.probed)
}

// TestFindAvailablePort_RealListeners is the end-to-end variant with a
// real DialProbe: occupy a small consecutive range, then verify the scan
// lands on the first port past it.
func TestFindAvailablePort_RealListeners(t *testing.T) {
	// Find a base port the OS considers free.
	seed, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	base := seed.Addr().(*net.TCPAddr).Port
	require.NoError(t, seed.Close())

	// Occupy base and base+1.
	var listeners []net.Listener
	for i := 0; i < 2; i++ {
		ln, listenErr := net.Listen("tcp", net.JoinHostPort("127.0.0.1", strconv.Itoa(base+i)))
		if listenErr != nil {
			t.Skipf("could not occupy port %d, skipping", base+i)
		}
		listeners = append(listeners, ln)
	}
	defer func() {
		for _, ln := range listeners {
			_ = ln.Close()
		}
	}()

	scanner := NewScanner(NewDialProbe())
	port, err := scanner.FindAvailablePort(model.PortRange{Start: base, End: base + 10})

	require.NoError(t, err)
	assert.Equal(t, base+2, port, "scan must land on the first free port after the occupied block")
}
