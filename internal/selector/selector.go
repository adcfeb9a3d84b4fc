// Package selector implements cascading region and locality selection.
// Choosing a region loads its localities asynchronously; results for a
// region that is no longer selected are discarded.
package selector

import (
	"context"
	"log/slog"
	"slices"
	"sync"
)

// Unselected is the sentinel value for an empty region or locality choice.
const Unselected = "0"

// Source supplies region codes and locality names, each ordered by name.
type Source interface {
	RegionCodes(ctx context.Context) ([]string, error)
	LocalityNames(ctx context.Context, uf string) ([]string, error)
}

// State is a snapshot of the selection. RegionsErr and LocalitiesErr hold
// the last fetch failure for the corresponding list, which is then empty.
type State struct {
	Region        string
	Locality      string
	Regions       []string
	Localities    []string
	RegionsErr    error
	LocalitiesErr error
	Loading       bool
	Generation    uint64
}

// Selection is the confirmed pair forwarded to the points listing.
type Selection struct {
	UF   string `json:"uf"`
	City string `json:"city"`
}

// Selector owns the selection state. It is safe for concurrent use.
type Selector struct {
	source  Source
	logger  *slog.Logger
	mu      sync.Mutex
	state   State
	cancel  context.CancelFunc
	wg      sync.WaitGroup
	updates chan State
}

// New creates a Selector with both choices set to Unselected.
func New(source Source, logger *slog.Logger) *Selector {
	return &Selector{
		source: source,
		logger: logger.With("system", "selector"),
		state: State{
			Region:   Unselected,
			Locality: Unselected,
		},
		updates: make(chan State, 1),
	}
}

// Init loads the region list. On failure the list is left empty, the error
// is recorded in the state, and returned. Calling Init again retries.
func (s *Selector) Init(ctx context.Context) error {
	regions, err := s.source.RegionCodes(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()

	if err != nil {
		s.logger.Error("region fetch failed", "error", err)
		s.state.Regions = nil
		s.state.RegionsErr = err
		s.notify()
		return err
	}

	s.state.Regions = regions
	s.state.RegionsErr = nil
	s.notify()
	return nil
}

// SelectRegion changes the region, resets the locality, and clears the
// locality list. For a real region it starts a fetch scoped to ctx whose
// result is applied only if no later SelectRegion call happened.
func (s *Selector) SelectRegion(ctx context.Context, uf string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}

	s.state.Generation++
	s.state.Region = uf
	s.state.Locality = Unselected
	s.state.Localities = nil
	s.state.LocalitiesErr = nil
	s.state.Loading = uf != Unselected

	if uf == Unselected {
		s.notify()
		return
	}

	fetchCtx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	gen := s.state.Generation

	s.wg.Add(1)
	go s.fetchLocalities(fetchCtx, cancel, gen, uf)

	s.notify()
}

// SelectLocality sets the locality. Any value is accepted.
func (s *Selector) SelectLocality(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state.Locality = name
	s.notify()
}

// Confirm returns the current pair as-is, sentinels included.
func (s *Selector) Confirm() Selection {
	s.mu.Lock()
	defer s.mu.Unlock()

	return Selection{UF: s.state.Region, City: s.state.Locality}
}

// State returns a copy of the current state.
func (s *Selector) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.snapshot()
}

// Wait blocks until every started locality fetch has returned.
func (s *Selector) Wait() {
	s.wg.Wait()
}

// Updates delivers the latest state after each change. Only the most recent
// undelivered state is kept.
func (s *Selector) Updates() <-chan State {
	return s.updates
}

func (s *Selector) fetchLocalities(ctx context.Context, cancel context.CancelFunc, gen uint64, uf string) {
	defer s.wg.Done()
	defer cancel()

	names, err := s.source.LocalityNames(ctx, uf)

	s.mu.Lock()
	defer s.mu.Unlock()

	if gen != s.state.Generation {
		s.logger.Debug("discarding stale localities", "region", uf, "generation", gen, "current", s.state.Generation)
		return
	}

	s.state.Loading = false
	s.cancel = nil

	if err != nil {
		s.logger.Error("locality fetch failed", "region", uf, "error", err)
		s.state.Localities = nil
		s.state.LocalitiesErr = err
		s.notify()
		return
	}

	s.state.Localities = names
	s.notify()
}

// notify must be called with mu held.
func (s *Selector) notify() {
	snap := s.snapshot()
	select {
	case s.updates <- snap:
	default:
		select {
		case <-s.updates:
		default:
		}
		s.updates <- snap
	}
}

func (s *Selector) snapshot() State {
	st := s.state
	st.Regions = slices.Clone(s.state.Regions)
	st.Localities = slices.Clone(s.state.Localities)
	return st
}
