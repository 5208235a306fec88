package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/jask/spawncodes/internal/catalog"
)

// Generator produces spawn commands for a manifest.
type Generator interface {
	Generate(ctx context.Context, manifestPath string) (catalog.Response, error)
}

// CatalogWriter persists a catalog at a user-chosen path.
type CatalogWriter interface {
	Write(ctx context.Context, path string, c *catalog.Catalog) error
}

// Phase is the tag of a session state.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseLoading
	PhaseReady
	PhaseFailed
)

func (p Phase) String() string {
	switch p {
	case PhaseLoading:
		return "loading"
	case PhaseReady:
		return "ready"
	case PhaseFailed:
		return "failed"
	}
	return "idle"
}

// State is a snapshot of the session. Catalog is set only when Ready and
// Err only when Failed.
type State struct {
	Phase   Phase
	Path    string
	Catalog *catalog.Catalog
	Err     error
}

// Request identifies one issued generation call.
type Request struct {
	Seq  uint64
	Path string
}

// Result is the outcome of running a Request.
type Result struct {
	Request
	Catalog *catalog.Catalog
	Err     error
}

// Session owns the active manifest and its generated catalog.
type Session struct {
	Generator Generator
	Writer    CatalogWriter
	Logger    *slog.Logger

	mu      sync.Mutex
	seq     uint64
	state   State
	message string
}

func (s *Session) log() *slog.Logger {
	if s.Logger == nil {
		return slog.Default()
	}
	return s.Logger
}

// SelectManifest moves the session to Loading(path) and returns the request
// the caller must Run. Any earlier in-flight request is superseded.
func (s *Session) SelectManifest(path string) (Request, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return Request{}, ErrSelectionCancelled
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state.Phase == PhaseLoading {
		s.log().Debug("superseding generation", "seq", s.seq, "path", s.state.Path)
	}
	s.seq++
	s.state = State{Phase: PhaseLoading, Path: path}
	s.message = ""
	s.log().Info("generation requested", "seq", s.seq, "path", path)
	return Request{Seq: s.seq, Path: path}, nil
}

// Run performs the outbound generation call for req. It does not touch
// session state; hand the result to Complete.
func (s *Session) Run(ctx context.Context, req Request) Result {
	res := Result{Request: req}
	if s.Generator == nil {
		res.Err = &GenerationError{Path: req.Path, Err: errors.New("generator not configured")}
		return res
	}
	resp, err := s.Generator.Generate(ctx, req.Path)
	if err != nil {
		res.Err = &GenerationError{Path: req.Path, Err: err}
		return res
	}
	cat, err := catalog.FromResponse(resp)
	if err != nil {
		res.Err = &GenerationError{Path: req.Path, Err: err}
		return res
	}
	res.Catalog = cat
	return res
}

// Complete applies res if it belongs to the most recent request. It reports
// whether the result was applied; stale results are dropped.
func (s *Session) Complete(res Result) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if res.Seq != s.seq || s.state.Phase != PhaseLoading {
		s.log().Debug("discarding stale generation result", "seq", res.Seq, "current", s.seq, "path", res.Path)
		return false
	}
	if res.Err != nil {
		var genErr *GenerationError
		if !errors.As(res.Err, &genErr) {
			res.Err = &GenerationError{Path: res.Path, Err: res.Err}
		}
		s.state = State{Phase: PhaseFailed, Path: res.Path, Err: res.Err}
		s.message = res.Err.Error()
		s.log().Warn("generation failed", "seq", res.Seq, "path", res.Path, "err", res.Err)
		return true
	}
	s.state = State{Phase: PhaseReady, Path: res.Path, Catalog: res.Catalog}
	s.log().Info("generation ready", "seq", res.Seq, "path", res.Path, "commands", res.Catalog.Total())
	return true
}

// Generate selects path and runs the request to completion.
func (s *Session) Generate(ctx context.Context, path string) error {
	req, err := s.SelectManifest(path)
	if err != nil {
		return err
	}
	res := s.Run(ctx, req)
	if !s.Complete(res) {
		return fmt.Errorf("generation for %s superseded", path)
	}
	return res.Err
}

// Export writes the ready catalog to dest. A failed write is recorded as
// the session message and leaves the catalog in place.
func (s *Session) Export(ctx context.Context, dest string) error {
	dest = strings.TrimSpace(dest)
	s.mu.Lock()
	st := s.state
	s.mu.Unlock()
	if st.Phase != PhaseReady {
		return ErrNotReady
	}
	if dest == "" {
		return ErrSelectionCancelled
	}
	if s.Writer == nil {
		return s.exportFailed(&ExportError{Path: dest, Err: errors.New("writer not configured")})
	}
	if err := s.Writer.Write(ctx, dest, st.Catalog); err != nil {
		return s.exportFailed(&ExportError{Path: dest, Err: err})
	}
	s.log().Info("catalog exported", "path", dest, "manifest", st.Path)
	return nil
}

func (s *Session) exportFailed(err *ExportError) error {
	s.mu.Lock()
	s.message = err.Error()
	s.mu.Unlock()
	s.log().Warn("export failed", "path", err.Path, "err", err.Err)
	return err
}

func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Catalog returns the ready catalog, or nil in any other phase.
func (s *Session) Catalog() *catalog.Catalog {
	return s.State().Catalog
}

// Message is the single current error message, empty when none.
func (s *Session) Message() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.message
}
