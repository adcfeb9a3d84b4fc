package selector_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"slices"
	"sync"
	"testing"
	"time"

	"github.com/JaimeStill/ecopoint/internal/selector"
)

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))

// gatedSource blocks each locality fetch until its region's gate is released.
type gatedSource struct {
	mu         sync.Mutex
	regions    []string
	regionsErr error
	localities map[string][]string
	gates      map[string]chan struct{}
	started    chan string
}

func newGatedSource() *gatedSource {
	return &gatedSource{
		regions: []string{"AC", "RJ", "SP"},
		localities: map[string][]string{
			"RJ": {"Niterói", "Rio de Janeiro"},
			"SP": {"Campinas", "São Paulo"},
		},
		gates:   make(map[string]chan struct{}),
		started: make(chan string, 8),
	}
}

func (g *gatedSource) gate(uf string) chan struct{} {
	g.mu.Lock()
	defer g.mu.Unlock()
	ch, ok := g.gates[uf]
	if !ok {
		ch = make(chan struct{})
		g.gates[uf] = ch
	}
	return ch
}

func (g *gatedSource) release(uf string) {
	close(g.gate(uf))
}

func (g *gatedSource) RegionCodes(ctx context.Context) ([]string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.regionsErr != nil {
		return nil, g.regionsErr
	}
	return g.regions, nil
}

func (g *gatedSource) LocalityNames(ctx context.Context, uf string) ([]string, error) {
	g.started <- uf
	<-g.gate(uf)
	if names, ok := g.localities[uf]; ok {
		return names, nil
	}
	return nil, errors.New("provider unavailable")
}

func waitStarted(t *testing.T, g *gatedSource, uf string) {
	t.Helper()
	select {
	case got := <-g.started:
		if got != uf {
			t.Fatalf("fetch started for %q, want %q", got, uf)
		}
	case <-time.After(time.Second):
		t.Fatalf("fetch for %q never started", uf)
	}
}

func TestNew_Unselected(t *testing.T) {
	s := selector.New(newGatedSource(), discard)
	st := s.State()

	if st.Region != selector.Unselected || st.Locality != selector.Unselected {
		t.Errorf("state = %+v", st)
	}
	if got := s.Confirm(); got != (selector.Selection{UF: "0", City: "0"}) {
		t.Errorf("Confirm() = %+v", got)
	}
}

func TestInit(t *testing.T) {
	s := selector.New(newGatedSource(), discard)
	if err := s.Init(context.Background()); err != nil {
		t.Fatalf("Init() error = %v", err)
	}

	if got := s.State().Regions; !slices.Equal(got, []string{"AC", "RJ", "SP"}) {
		t.Errorf("Regions = %v", got)
	}
}

func TestInit_ErrorThenRetry(t *testing.T) {
	src := newGatedSource()
	src.regionsErr = errors.New("timeout")
	s := selector.New(src, discard)

	if err := s.Init(context.Background()); err == nil {
		t.Fatal("Init() error = nil, want error")
	}
	st := s.State()
	if st.RegionsErr == nil || len(st.Regions) != 0 {
		t.Errorf("state after failure = %+v", st)
	}

	src.mu.Lock()
	src.regionsErr = nil
	src.mu.Unlock()

	if err := s.Init(context.Background()); err != nil {
		t.Fatalf("retry Init() error = %v", err)
	}
	st = s.State()
	if st.RegionsErr != nil || len(st.Regions) != 3 {
		t.Errorf("state after retry = %+v", st)
	}
}

func TestSelectRegion_LoadsLocalities(t *testing.T) {
	src := newGatedSource()
	s := selector.New(src, discard)

	s.SelectRegion(context.Background(), "SP")
	waitStarted(t, src, "SP")

	if st := s.State(); !st.Loading || st.Region != "SP" {
		t.Errorf("state while loading = %+v", st)
	}

	src.release("SP")
	s.Wait()

	st := s.State()
	if st.Loading || !slices.Equal(st.Localities, []string{"Campinas", "São Paulo"}) {
		t.Errorf("state = %+v", st)
	}
}

func TestSelectRegion_DiscardsStaleResponse(t *testing.T) {
	src := newGatedSource()
	s := selector.New(src, discard)
	ctx := context.Background()

	s.SelectRegion(ctx, "SP")
	waitStarted(t, src, "SP")
	s.SelectRegion(ctx, "RJ")
	waitStarted(t, src, "RJ")

	src.release("RJ")
	src.release("SP")
	s.Wait()

	st := s.State()
	if st.Region != "RJ" {
		t.Errorf("Region = %q, want RJ", st.Region)
	}
	if !slices.Equal(st.Localities, []string{"Niterói", "Rio de Janeiro"}) {
		t.Errorf("Localities = %v, want RJ localities", st.Localities)
	}
}

func TestSelectRegion_ResetsLocality(t *testing.T) {
	src := newGatedSource()
	s := selector.New(src, discard)
	ctx := context.Background()

	s.SelectRegion(ctx, "SP")
	waitStarted(t, src, "SP")
	src.release("SP")
	s.Wait()
	s.SelectLocality("Campinas")

	s.SelectRegion(ctx, selector.Unselected)
	s.Wait()

	st := s.State()
	if st.Locality != selector.Unselected || st.Localities != nil || st.Loading {
		t.Errorf("state = %+v", st)
	}
	if got := s.Confirm(); got != (selector.Selection{UF: "0", City: "0"}) {
		t.Errorf("Confirm() = %+v", got)
	}
}

func TestSelectRegion_FetchError(t *testing.T) {
	src := newGatedSource()
	s := selector.New(src, discard)

	s.SelectRegion(context.Background(), "AC")
	waitStarted(t, src, "AC")
	src.release("AC")
	s.Wait()

	st := s.State()
	if st.LocalitiesErr == nil || st.Loading || len(st.Localities) != 0 {
		t.Errorf("state = %+v", st)
	}
}

func TestConfirm(t *testing.T) {
	src := newGatedSource()
	s := selector.New(src, discard)

	s.SelectRegion(context.Background(), "SP")
	waitStarted(t, src, "SP")
	src.release("SP")
	s.Wait()
	s.SelectLocality("Campinas")

	if got := s.Confirm(); got != (selector.Selection{UF: "SP", City: "Campinas"}) {
		t.Errorf("Confirm() = %+v", got)
	}
}

func TestUpdates_KeepsLatest(t *testing.T) {
	s := selector.New(newGatedSource(), discard)

	s.SelectLocality("a")
	s.SelectLocality("b")
	s.SelectLocality("c")

	select {
	case st := <-s.Updates():
		if st.Locality != "c" {
			t.Errorf("Locality = %q, want c", st.Locality)
		}
	default:
		t.Fatal("no update delivered")
	}

	select {
	case st := <-s.Updates():
		t.Errorf("unexpected extra update %+v", st)
	default:
	}
}

func TestState_IsCopy(t *testing.T) {
	s := selector.New(newGatedSource(), discard)
	if err := s.Init(context.Background()); err != nil {
		t.Fatal(err)
	}

	st := s.State()
	st.Regions[0] = "XX"

	if s.State().Regions[0] != "AC" {
		t.Error("State() shares the region slice")
	}
}
