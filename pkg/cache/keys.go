package cache

// Keyer builds cache keys for each cached stage.
type Keyer interface {
	// TilingKey identifies a generated tiling.
	TilingKey(opts TilingKeyOpts) string
	// ArtifactKey identifies one rendered output of a tiling.
	ArtifactKey(tilingHash string, opts ArtifactKeyOpts) string
}

// TilingKeyOpts holds every input that changes a generated tiling.
type TilingKeyOpts struct {
	Width    int    `json:"w"`
	Height   int    `json:"h"`
	MinBlock int    `json:"min"`
	MaxBlock int    `json:"max"`
	MaxSteps int    `json:"steps"`
	Seed     int64  `json:"seed"`
	Strategy string `json:"strategy"`
}

// ArtifactKeyOpts holds every input that changes a rendered artifact.
type ArtifactKeyOpts struct {
	Format   string `json:"format"`
	Style    string `json:"style"`
	CellSize int    `json:"cell"`
	GridDots bool   `json:"dots,omitempty"`
	Stride   int    `json:"stride,omitempty"`
}

// DefaultKeyer hashes key options into fixed-length keys.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the standard keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

func (DefaultKeyer) TilingKey(opts TilingKeyOpts) string {
	return hashKey("tiling", opts)
}

func (DefaultKeyer) ArtifactKey(tilingHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", tilingHash, opts)
}
