package pack

import (
	"archive/zip"
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestExtractScripts(t *testing.T) {
	html := `<html><head><script src="lib.js"></script></head>
<body><script>let a = 1;</script><p>text</p><script>a = 2;</script></body></html>`

	got := ExtractScripts(html)
	if !strings.Contains(got, "let a = 1;") || !strings.Contains(got, "a = 2;") {
		t.Errorf("extracted = %q, want both inline scripts", got)
	}
	if strings.Contains(got, "text") {
		t.Errorf("extracted = %q, picked up non-script text", got)
	}
}

func TestGatherSourceFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "main.js")
	if err := ioutil.WriteFile(path, []byte("let x = 1;"), 0o644); err != nil {
		t.Fatal(err)
	}

	got, err := GatherSource(path)
	if err != nil {
		t.Fatalf("GatherSource failed: %v", err)
	}
	if got != "let x = 1;" {
		t.Errorf("source = %q, want the file contents", got)
	}
}

func TestGatherSourceMissingInput(t *testing.T) {
	if _, err := GatherSource(filepath.Join(t.TempDir(), "nope.js")); err == nil {
		t.Error("missing input did not error")
	}
}

func TestGatherSourceDirectory(t *testing.T) {
	dir := t.TempDir()
	files := map[string]string{
		"b.js":       "let b = 2;",
		"a.js":       "let a = 1;",
		"index.html": "<script>let h = 3;</script>",
		"notes.txt":  "ignored",
	}
	for name, contents := range files {
		if err := ioutil.WriteFile(filepath.Join(dir, name), []byte(contents), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	if err := os.Mkdir(filepath.Join(dir, "nested"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := ioutil.WriteFile(filepath.Join(dir, "nested", "c.js"), []byte("let c = 4;"), 0o644); err != nil {
		t.Fatal(err)
	}

	got, err := GatherSource(dir)
	if err != nil {
		t.Fatalf("GatherSource failed: %v", err)
	}

	// name order, root level only, html contributes its script body
	aAt := strings.Index(got, "let a = 1;")
	bAt := strings.Index(got, "let b = 2;")
	if aAt == -1 || bAt == -1 || aAt > bAt {
		t.Errorf("source = %q, want a.js before b.js", got)
	}
	if !strings.Contains(got, "let h = 3;") {
		t.Errorf("source = %q, want the html script", got)
	}
	if strings.Contains(got, "let c = 4;") || strings.Contains(got, "ignored") {
		t.Errorf("source = %q, picked up nested or non-source entries", got)
	}
}

func TestGatherSourceBundle(t *testing.T) {
	dir := t.TempDir()
	bundle := filepath.Join(dir, "bundle.zip")

	f, err := os.Create(bundle)
	if err != nil {
		t.Fatal(err)
	}

	w := zip.NewWriter(f)
	entries := map[string]string{
		"main.js":        "let m = 1;",
		"page.html":      "<script>let p = 2;</script>",
		"nested/skip.js": "let s = 3;",
	}
	for name, contents := range entries {
		entry, err := w.Create(name)
		if err != nil {
			t.Fatal(err)
		}
		if _, err := entry.Write([]byte(contents)); err != nil {
			t.Fatal(err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
	if err := f.Close(); err != nil {
		t.Fatal(err)
	}

	got, err := GatherSource(bundle)
	if err != nil {
		t.Fatalf("GatherSource failed: %v", err)
	}
	if !strings.Contains(got, "let m = 1;") || !strings.Contains(got, "let p = 2;") {
		t.Errorf("source = %q, want both root entries", got)
	}
	if strings.Contains(got, "let s = 3;") {
		t.Errorf("source = %q, picked up a nested entry", got)
	}
}

func TestOutputPath(t *testing.T) {
	cases := []struct {
		input  string
		output string
		want   string
	}{
		{"game.js", "", "game.sb3"},
		{"game.js", "out", "out.sb3"},
		{"game.js", "out.sb3", "out.sb3"},
		{"dir/game.html", "", "game.sb3"},
	}

	for _, tc := range cases {
		if got := OutputPath(tc.input, tc.output); got != tc.want {
			t.Errorf("OutputPath(%q, %q) = %q, want %q", tc.input, tc.output, got, tc.want)
		}
	}
}
