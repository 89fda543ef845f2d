package domain

// AssetRequest describes one asset to create in the destination.
// The binary is fetched by the destination from SourceURL at processing
// time (upload-by-reference), never pre-downloaded by the pipeline.
type AssetRequest struct {
	FileName    string
	SourceURL   string
	Title       string
	Description string
}

// AssetTarget is a published destination asset addressable from entries.
type AssetTarget struct {
	ID  string
	URL string
}

// AssetMap maps a source file name to its published destination asset.
// It is built once, after all uploads settle, from the destination's
// own published-asset listing, and is read-only afterwards.
type AssetMap map[string]AssetTarget

// Resolve looks up the asset for a file name.
func (m AssetMap) Resolve(fileName string) (AssetTarget, bool) {
	t, ok := m[fileName]
	return t, ok
}
