package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
)

// LayoutKeyOpts are the inputs besides the scene that change a layout.
type LayoutKeyOpts struct {
	Steps bool `json:"steps"` // scene steps were applied before layout
}

// ArtifactKeyOpts are the render settings that change an artifact.
type ArtifactKeyOpts struct {
	Format string  `json:"format"`
	Scale  float64 `json:"scale,omitempty"`
	Frames bool    `json:"frames,omitempty"`
	Labels bool    `json:"labels,omitempty"`
}

// Keyer builds cache keys.
type Keyer interface {
	// LayoutKey keys the layout computed from a scene with the given hash.
	LayoutKey(sceneHash string, opts LayoutKeyOpts) string

	// ArtifactKey keys a rendering of the layout with the given id.
	ArtifactKey(layoutID string, opts ArtifactKeyOpts) string
}

// DefaultKeyer hashes its inputs under a fixed prefix per key kind.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the standard keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

func (DefaultKeyer) LayoutKey(sceneHash string, opts LayoutKeyOpts) string {
	return hashKey("layout", sceneHash, opts)
}

func (DefaultKeyer) ArtifactKey(layoutID string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", layoutID, opts)
}

// hashKey returns prefix:sha256(json(parts)).
func hashKey(prefix string, parts ...any) string {
	data, _ := json.Marshal(parts)
	return fmt.Sprintf("%s:%s", prefix, Hash(data))
}

// Hash returns the hex SHA-256 of data.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
