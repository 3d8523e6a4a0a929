package docker

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Label keys persist server-instance metadata on the containers this
// CLI starts. The "primer." prefix namespaces them away from labels set
// by other tools.
const (
	// LabelPrefix is the common prefix for all primer labels.
	LabelPrefix = "primer."

	// LabelManagedBy identifies containers started by primer. This is
	// the label used for filtering during discovery.
	LabelManagedBy = LabelPrefix + "managed-by"

	// LabelRepo stores the upstream repository URL the container serves.
	LabelRepo = LabelPrefix + "repo"

	// LabelPort stores the published listen port.
	LabelPort = LabelPrefix + "port"

	// LabelProxyPort stores the published proxy port (listen port + 1).
	LabelProxyPort = LabelPrefix + "proxy-port"

	// LabelCreatedAt stores the RFC3339 timestamp of container creation.
	LabelCreatedAt = LabelPrefix + "created-at"
)

// ManagedByValue is the constant value of the LabelManagedBy label.
const ManagedByValue = "primer"

// Instance describes one primer-started server container,
// reconstructed entirely from Docker labels and container state.
type Instance struct {
	ContainerID   string `json:"containerId"`
	ContainerName string `json:"containerName"`

	// Status is the short Docker state string ("running", "exited", ...).
	Status string `json:"status"`

	// Repo is the upstream repository URL the container serves.
	Repo string `json:"repo"`

	// Port and ProxyPort are the published host ports.
	Port      int `json:"port"`
	ProxyPort int `json:"proxyPort"`

	CreatedAt time.Time `json:"createdAt"`
}

// BuildLabels constructs the label map applied to a server container.
// The set is complete enough to rebuild an Instance from `docker
// inspect` output alone.
func BuildLabels(repoURL string, port, proxyPort int, createdAt time.Time) map[string]string {
	return map[string]string{
		LabelManagedBy: ManagedByValue,
		LabelRepo:      repoURL,
		LabelPort:      strconv.Itoa(port),
		LabelProxyPort: strconv.Itoa(proxyPort),
		LabelCreatedAt: createdAt.UTC().Format(time.RFC3339),
	}
}

// ParseLabels reconstructs an Instance's metadata from container
// labels. It is the inverse of BuildLabels; ContainerID, ContainerName,
// and Status come from the container itself, not from labels.
//
// Missing labels are reported together so one inspect round-trip shows
// everything that is wrong with a hand-modified container.
func ParseLabels(labels map[string]string) (Instance, error) {
	var missing []string
	for _, key := range []string{LabelManagedBy, LabelRepo, LabelPort, LabelProxyPort, LabelCreatedAt} {
		if labels[key] == "" {
			missing = append(missing, key)
		}
	}
	if len(missing) > 0 {
		return Instance{}, fmt.Errorf("missing required labels: %s", strings.Join(missing, ", "))
	}
	if labels[LabelManagedBy] != ManagedByValue {
		return Instance{}, fmt.Errorf("label %s has value %q, want %q", LabelManagedBy, labels[LabelManagedBy], ManagedByValue)
	}

	port, err := strconv.Atoi(labels[LabelPort])
	if err != nil {
		return Instance{}, fmt.Errorf("label %s: %w", LabelPort, err)
	}
	proxyPort, err := strconv.Atoi(labels[LabelProxyPort])
	if err != nil {
		return Instance{}, fmt.Errorf("label %s: %w", LabelProxyPort, err)
	}
	createdAt, err := time.Parse(time.RFC3339, labels[LabelCreatedAt])
	if err != nil {
		return Instance{}, fmt.Errorf("label %s: %w", LabelCreatedAt, err)
	}

	return Instance{
		Repo:      labels[LabelRepo],
		Port:      port,
		ProxyPort: proxyPort,
		CreatedAt: createdAt,
	}, nil
}
