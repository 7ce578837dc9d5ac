package server

import (
	"io"
	"io/ioutil"
	"net/http"
	"os"
	"path/filepath"

	"scratchc/common"
	"scratchc/gate"
	"scratchc/logging"
	"scratchc/pack"
	"scratchc/syntax"

	"github.com/pkg/errors"
)

// maxUploadBytes bounds one translation request
const maxUploadBytes = 8 << 20

// Server exposes the translator over HTTP: a multipart upload comes in, a
// .sb3 archive goes out.  Every request is served from its own scratch
// directory which is removed before the response returns.
type Server struct {
	addr string
}

// New creates a server bound to the given address
func New(addr string) *Server {
	return &Server{addr: addr}
}

// Handler builds the endpoint's routing table
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/translate", s.handleTranslate)
	mux.HandleFunc("/healthz", s.handleHealthz)

	return mux
}

// Run serves until the listener fails
func (s *Server) Run() error {
	logging.PrintInfoMessage("Serving", "listening on "+s.addr)

	return errors.Wrap(http.ListenAndServe(s.addr, s.Handler()), "serving")
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	io.WriteString(w, "ok\n")
}

// handleTranslate accepts a multipart POST with the program in the `source`
// field and responds with the translated archive.  Translation errors map
// to 400, everything else to 500.
func (s *Server) handleTranslate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "POST required", http.StatusMethodNotAllowed)
		return
	}

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		http.Error(w, "malformed upload: "+err.Error(), http.StatusBadRequest)
		return
	}

	upload, header, err := r.FormFile("source")
	if err != nil {
		http.Error(w, "missing `source` file field", http.StatusBadRequest)
		return
	}
	defer upload.Close()

	dir, cleanup, err := pack.ScratchDir()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	defer cleanup()

	inPath := filepath.Join(dir, filepath.Base(header.Filename))
	if inPath == dir || filepath.Ext(inPath) == "" {
		inPath = filepath.Join(dir, "upload"+common.SrcFileExtension)
	}

	in, err := os.Create(inPath)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	if _, err = io.Copy(in, upload); err != nil {
		in.Close()
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	in.Close()

	outPath := filepath.Join(dir, "project"+common.OutFileExtension)
	if err := pack.Translate(inPath, outPath); err != nil {
		http.Error(w, err.Error(), statusFor(err))
		return
	}

	archive, err := ioutil.ReadFile(outPath)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/zip")
	w.Header().Set("Content-Disposition", `attachment; filename="project.sb3"`)
	w.Write(archive)
}

// statusFor distinguishes user-caused translation failures from everything
// else
func statusFor(err error) int {
	switch errors.Cause(err).(type) {
	case *syntax.ParseError, *gate.UnsupportedFeature:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
