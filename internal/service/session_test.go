package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/jask/spawncodes/internal/catalog"
)

type fakeGenerator struct {
	mu    sync.Mutex
	calls []string
	resp  map[string]catalog.Response
	errs  map[string]error
}

func (g *fakeGenerator) Generate(ctx context.Context, path string) (catalog.Response, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.calls = append(g.calls, path)
	if err := g.errs[path]; err != nil {
		return catalog.Response{}, err
	}
	return g.resp[path], nil
}

type fakeWriter struct {
	writes []string
	err    error
}

func (w *fakeWriter) Write(ctx context.Context, path string, c *catalog.Catalog) error {
	w.writes = append(w.writes, path)
	return w.err
}

func scenarioResponse() catalog.Response {
	return catalog.Response{
		EngramNames:             []string{"cheat GiveEngrams"},
		ItemSpawnCodes:          []string{},
		CreatureSpawnCodes:      []string{},
		TamedCreatureSpawnCodes: []string{},
		BuffBlueprints:          []string{"cheat GiveItem Blueprint'/Game/Mod/Buff.Buff' 1 1 0"},
	}
}

func TestSessionGenerateReady(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	gen := &fakeGenerator{resp: map[string]catalog.Response{"mods/manifest.txt": scenarioResponse()}}
	s := &Session{Generator: gen}
	require.Equal(t, PhaseIdle, s.State().Phase)

	require.NoError(t, s.Generate(ctx, "mods/manifest.txt"))
	st := s.State()
	require.Equal(t, PhaseReady, st.Phase)
	require.Equal(t, "mods/manifest.txt", st.Path)
	require.Equal(t, []string{"mods/manifest.txt"}, gen.calls)

	buffs := s.Catalog().Commands(catalog.Buff)
	require.Len(t, buffs, 1)
	tok, ok := catalog.ExtractBlueprint(buffs[0])
	require.True(t, ok)
	require.Equal(t, "Blueprint'/Game/Mod/Buff.Buff'", tok)
	require.Equal(t, []string{"cheat GiveEngrams"}, s.Catalog().Commands(catalog.Engram))
}

func TestSessionSelectLoading(t *testing.T) {
	t.Parallel()
	s := &Session{Generator: &fakeGenerator{}}
	req, err := s.SelectManifest("  a.txt ")
	require.NoError(t, err)
	require.Equal(t, uint64(1), req.Seq)
	require.Equal(t, "a.txt", req.Path)
	st := s.State()
	require.Equal(t, PhaseLoading, st.Phase)
	require.Equal(t, "a.txt", st.Path)
	require.Nil(t, st.Catalog)
}

func TestSessionSelectEmptyIsCancelled(t *testing.T) {
	t.Parallel()
	gen := &fakeGenerator{resp: map[string]catalog.Response{"a.txt": scenarioResponse()}}
	s := &Session{Generator: gen}
	require.NoError(t, s.Generate(context.Background(), "a.txt"))

	_, err := s.SelectManifest("   ")
	require.ErrorIs(t, err, ErrSelectionCancelled)
	require.Equal(t, PhaseReady, s.State().Phase)
	require.Len(t, gen.calls, 1)
}

func TestSessionSupersededResponseDiscarded(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	gen := &fakeGenerator{resp: map[string]catalog.Response{
		"mods/manifest.txt": scenarioResponse(),
		"other.txt":         {ItemSpawnCodes: []string{"cheat giveitem other"}},
	}}
	s := &Session{Generator: gen}

	first, err := s.SelectManifest("mods/manifest.txt")
	require.NoError(t, err)
	second, err := s.SelectManifest("other.txt")
	require.NoError(t, err)
	require.Greater(t, second.Seq, first.Seq)

	secondRes := s.Run(ctx, second)
	firstRes := s.Run(ctx, first)

	require.True(t, s.Complete(secondRes))
	require.False(t, s.Complete(firstRes))

	st := s.State()
	require.Equal(t, PhaseReady, st.Phase)
	require.Equal(t, "other.txt", st.Path)
	require.Equal(t, []string{"cheat giveitem other"}, st.Catalog.Commands(catalog.Item))
	require.Empty(t, st.Catalog.Commands(catalog.Engram))
}

func TestSessionStaleFailureDoesNotOverwrite(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	gen := &fakeGenerator{
		resp: map[string]catalog.Response{"good.txt": scenarioResponse()},
		errs: map[string]error{"bad.txt": errors.New("boom")},
	}
	s := &Session{Generator: gen}

	bad, _ := s.SelectManifest("bad.txt")
	good, _ := s.SelectManifest("good.txt")
	require.True(t, s.Complete(s.Run(ctx, good)))
	require.False(t, s.Complete(s.Run(ctx, bad)))
	require.Equal(t, PhaseReady, s.State().Phase)
	require.Empty(t, s.Message())
}

func TestSessionCompleteTwiceIgnored(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := &Session{Generator: &fakeGenerator{resp: map[string]catalog.Response{"a": scenarioResponse()}}}
	req, _ := s.SelectManifest("a")
	res := s.Run(ctx, req)
	require.True(t, s.Complete(res))
	require.False(t, s.Complete(res))
}

func TestSessionGenerationFailure(t *testing.T) {
	t.Parallel()
	gen := &fakeGenerator{
		resp: map[string]catalog.Response{"ok.txt": scenarioResponse()},
		errs: map[string]error{"missing.txt": errors.New("No such file or directory")},
	}
	s := &Session{Generator: gen}
	require.NoError(t, s.Generate(context.Background(), "ok.txt"))

	err := s.Generate(context.Background(), "missing.txt")
	var genErr *GenerationError
	require.ErrorAs(t, err, &genErr)
	require.Equal(t, "missing.txt", genErr.Path)

	st := s.State()
	require.Equal(t, PhaseFailed, st.Phase)
	require.Equal(t, "missing.txt", st.Path)
	require.Nil(t, st.Catalog)
	require.Nil(t, s.Catalog())
	require.Equal(t, "Failed to generate commands: No such file or directory", s.Message())
	require.Len(t, gen.calls, 2)
}

func TestSessionMalformedResponseFails(t *testing.T) {
	t.Parallel()
	gen := &fakeGenerator{resp: map[string]catalog.Response{"m.txt": {BuffBlueprints: []string{""}}}}
	s := &Session{Generator: gen}
	err := s.Generate(context.Background(), "m.txt")
	require.ErrorIs(t, err, catalog.ErrMalformed)
	require.Equal(t, PhaseFailed, s.State().Phase)
}

func TestSessionReselectClearsMessage(t *testing.T) {
	t.Parallel()
	gen := &fakeGenerator{
		resp: map[string]catalog.Response{"ok.txt": scenarioResponse()},
		errs: map[string]error{"bad.txt": errors.New("nope")},
	}
	s := &Session{Generator: gen}
	require.Error(t, s.Generate(context.Background(), "bad.txt"))
	require.NotEmpty(t, s.Message())

	_, err := s.SelectManifest("ok.txt")
	require.NoError(t, err)
	require.Empty(t, s.Message())
}

func TestSessionExport(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	w := &fakeWriter{}
	s := &Session{Generator: &fakeGenerator{resp: map[string]catalog.Response{"a": scenarioResponse()}}, Writer: w}

	require.ErrorIs(t, s.Export(ctx, "out.txt"), ErrNotReady)
	require.Empty(t, w.writes)

	require.NoError(t, s.Generate(ctx, "a"))
	require.ErrorIs(t, s.Export(ctx, ""), ErrSelectionCancelled)
	require.Empty(t, w.writes)

	require.NoError(t, s.Export(ctx, "out.txt"))
	require.Equal(t, []string{"out.txt"}, w.writes)
	require.Empty(t, s.Message())
}

func TestSessionExportFailureKeepsReady(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	w := &fakeWriter{err: errors.New("disk full")}
	s := &Session{Generator: &fakeGenerator{resp: map[string]catalog.Response{"a": scenarioResponse()}}, Writer: w}
	require.NoError(t, s.Generate(ctx, "a"))
	before := s.Catalog()

	err := s.Export(ctx, "out.txt")
	var expErr *ExportError
	require.ErrorAs(t, err, &expErr)
	require.Equal(t, "out.txt", expErr.Path)
	require.Equal(t, "Failed to export commands: disk full", s.Message())

	st := s.State()
	require.Equal(t, PhaseReady, st.Phase)
	require.Same(t, before, st.Catalog)

	// a later failure replaces the message
	w.err = errors.New("read-only")
	require.Error(t, s.Export(ctx, "again.txt"))
	require.Equal(t, "Failed to export commands: read-only", s.Message())
}

func TestSessionExportDuringLoading(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	w := &fakeWriter{}
	s := &Session{Generator: &fakeGenerator{resp: map[string]catalog.Response{"a": scenarioResponse()}}, Writer: w}
	require.NoError(t, s.Generate(ctx, "a"))
	_, err := s.SelectManifest("b")
	require.NoError(t, err)
	require.ErrorIs(t, s.Export(ctx, "out.txt"), ErrNotReady)
	require.Empty(t, w.writes)
}

func TestSessionConcurrentSelectLastWins(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	paths := []string{"a", "b", "c", "d", "e"}
	resp := map[string]catalog.Response{}
	for _, p := range paths {
		resp[p] = catalog.Response{EngramNames: []string{p}}
	}
	s := &Session{Generator: &fakeGenerator{resp: resp}}

	reqs := make([]Request, 0, len(paths))
	for _, p := range paths {
		req, err := s.SelectManifest(p)
		require.NoError(t, err)
		reqs = append(reqs, req)
	}
	var wg sync.WaitGroup
	for _, req := range reqs {
		wg.Add(1)
		go func(req Request) {
			defer wg.Done()
			s.Complete(s.Run(ctx, req))
		}(req)
	}
	wg.Wait()

	st := s.State()
	require.Equal(t, PhaseReady, st.Phase)
	require.Equal(t, "e", st.Path)
	require.Equal(t, []string{"e"}, st.Catalog.Commands(catalog.Engram))
}
