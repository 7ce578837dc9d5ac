package pack

import (
	"embed"

	"scratchc/sb3"

	"github.com/pkg/errors"
)

// The two costume blobs travel inside the binary and are copied verbatim
// into every archive under their content-id filenames.
//
//go:embed assets
var assetFS embed.FS

// AssetNames returns the archive entry names of the bundled assets
func AssetNames() []string {
	return []string{
		sb3.BackdropAssetID + ".svg",
		sb3.CostumeAssetID + ".svg",
	}
}

// Asset returns the bytes of one bundled asset
func Asset(name string) ([]byte, error) {
	data, err := assetFS.ReadFile("assets/" + name)
	if err != nil {
		return nil, errors.Wrapf(err, "reading bundled asset %s", name)
	}

	return data, nil
}
