package pack

import (
	"archive/zip"
	"io/ioutil"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"scratchc/common"

	"github.com/pkg/errors"
	"golang.org/x/net/html"
)

// GatherSource resolves an input path into one JavaScript source string.
// The input may be a single .js file, an .html file, a directory or a .zip
// bundle.  Directories and bundles are scanned at the root level only:
// their .js entries are concatenated in name order and their .html entries
// contribute the contents of their script elements.
func GatherSource(input string) (string, error) {
	info, err := os.Stat(input)
	if err != nil {
		return "", errors.Wrap(err, "reading input")
	}

	if info.IsDir() {
		return gatherDir(input)
	}

	switch strings.ToLower(filepath.Ext(input)) {
	case common.ZipFileExtension:
		return gatherBundle(input)
	case common.HTMLFileExtension:
		data, err := ioutil.ReadFile(input)
		if err != nil {
			return "", errors.Wrap(err, "reading input")
		}

		return ExtractScripts(string(data)), nil
	default:
		data, err := ioutil.ReadFile(input)
		if err != nil {
			return "", errors.Wrap(err, "reading input")
		}

		return string(data), nil
	}
}

// gatherDir concatenates the root-level sources of a directory
func gatherDir(dir string) (string, error) {
	entries, err := ioutil.ReadDir(dir)
	if err != nil {
		return "", errors.Wrap(err, "scanning input directory")
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		switch strings.ToLower(filepath.Ext(entry.Name())) {
		case common.SrcFileExtension, common.HTMLFileExtension:
			names = append(names, entry.Name())
		}
	}

	sort.Strings(names)

	var parts []string
	for _, name := range names {
		data, err := ioutil.ReadFile(filepath.Join(dir, name))
		if err != nil {
			return "", errors.Wrapf(err, "reading %s", name)
		}

		parts = append(parts, sourceOf(name, string(data)))
	}

	return strings.Join(parts, "\n"), nil
}

// gatherBundle concatenates the root-level sources of a zip archive.
// Nested entries are ignored.
func gatherBundle(path string) (string, error) {
	r, err := zip.OpenReader(path)
	if err != nil {
		return "", errors.Wrap(err, "opening bundle")
	}
	defer r.Close()

	var names []string
	byName := make(map[string]*zip.File)
	for _, f := range r.File {
		if strings.ContainsRune(f.Name, '/') {
			continue
		}

		switch strings.ToLower(filepath.Ext(f.Name)) {
		case common.SrcFileExtension, common.HTMLFileExtension:
			names = append(names, f.Name)
			byName[f.Name] = f
		}
	}

	sort.Strings(names)

	var parts []string
	for _, name := range names {
		rc, err := byName[name].Open()
		if err != nil {
			return "", errors.Wrapf(err, "opening bundle entry %s", name)
		}

		data, err := ioutil.ReadAll(rc)
		rc.Close()
		if err != nil {
			return "", errors.Wrapf(err, "reading bundle entry %s", name)
		}

		parts = append(parts, sourceOf(name, string(data)))
	}

	return strings.Join(parts, "\n"), nil
}

func sourceOf(name, data string) string {
	if strings.ToLower(filepath.Ext(name)) == common.HTMLFileExtension {
		return ExtractScripts(data)
	}

	return data
}

// ExtractScripts returns the concatenated contents of every inline
// `<script>` element of an HTML document.  Script elements with a src
// attribute have no inline body and contribute nothing.
func ExtractScripts(src string) string {
	tokenizer := html.NewTokenizer(strings.NewReader(src))

	var parts []string
	inScript := false
	for {
		switch tokenizer.Next() {
		case html.ErrorToken:
			return strings.Join(parts, "\n")
		case html.StartTagToken:
			name, _ := tokenizer.TagName()
			inScript = string(name) == "script"
		case html.EndTagToken:
			inScript = false
		case html.TextToken:
			if inScript {
				parts = append(parts, string(tokenizer.Text()))
			}
		}
	}
}
