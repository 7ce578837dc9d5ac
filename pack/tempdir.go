package pack

import (
	"os"
	"path/filepath"

	"scratchc/logging"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// ScratchDir creates a request-scoped temporary directory under the system
// temp root.  The returned cleanup function removes the directory; removal
// failures are logged and swallowed so a stuck handle never fails the
// request it served.
func ScratchDir() (string, func(), error) {
	dir := filepath.Join(os.TempDir(), "scratchc-"+uuid.NewString())
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", nil, errors.Wrap(err, "creating scratch directory")
	}

	cleanup := func() {
		if err := os.RemoveAll(dir); err != nil {
			logging.PrintWarningMessage("Cleanup", "failed to remove "+dir+": "+err.Error())
		}
	}

	return dir, cleanup, nil
}
