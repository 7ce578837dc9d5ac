package pack

import (
	"archive/zip"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"scratchc/build"
	"scratchc/common"
	"scratchc/sb3"

	"github.com/pkg/errors"
)

// Translate runs the full pipeline for one input path: gather the source,
// compile it, and pack the resulting envelope with the bundled assets into
// a .sb3 archive at the output path.  An empty output path derives the
// archive name from the input.
func Translate(input, output string) error {
	src, err := GatherSource(input)
	if err != nil {
		return err
	}

	project, err := build.NewCompiler(input, src).Compile()
	if err != nil {
		return err
	}

	return WriteArchive(project, OutputPath(input, output))
}

// OutputPath resolves the archive path for an input, forcing the output
// suffix
func OutputPath(input, output string) string {
	if output == "" {
		base := strings.TrimSuffix(filepath.Base(input), filepath.Ext(input))
		output = base + common.OutFileExtension
	}

	if !strings.HasSuffix(output, common.OutFileExtension) {
		output += common.OutFileExtension
	}

	return output
}

// WriteArchive serializes the envelope and packs it with the bundled
// costume assets.  A partially written archive is unlinked on any failure.
func WriteArchive(project *sb3.Project, path string) (err error) {
	manifest, err := json.Marshal(project)
	if err != nil {
		return errors.Wrap(err, "encoding project manifest")
	}

	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "creating archive")
	}

	defer func() {
		if err != nil {
			os.Remove(path)
		}
	}()

	w := zip.NewWriter(f)

	entry, err := w.Create(common.ProjectFileName)
	if err != nil {
		f.Close()
		return errors.Wrap(err, "writing archive")
	}

	if _, err = entry.Write(manifest); err != nil {
		f.Close()
		return errors.Wrap(err, "writing archive")
	}

	for _, name := range AssetNames() {
		blob, blobErr := Asset(name)
		if blobErr != nil {
			f.Close()
			err = blobErr
			return err
		}

		entry, err = w.Create(name)
		if err != nil {
			f.Close()
			return errors.Wrap(err, "writing archive")
		}

		if _, err = entry.Write(blob); err != nil {
			f.Close()
			return errors.Wrap(err, "writing archive")
		}
	}

	if err = w.Close(); err != nil {
		f.Close()
		return errors.Wrap(err, "finalizing archive")
	}

	if err = f.Close(); err != nil {
		return errors.Wrap(err, "closing archive")
	}

	return nil
}
