package realtime

import (
	"context"
	"sync"
	"time"

	"parcelmatch/internal/core/application/usecases/queries"
	"parcelmatch/internal/core/domain/model/kernel"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"
)

// ParcelStore reconciles parcel snapshots arriving from both the push path
// and the poll fallback. A snapshot applies only when its version advances
// past the stored one, so replaying the same transition from two sources
// never double-processes it.
type ParcelStore struct {
	mu      sync.Mutex
	parcels map[kernel.UUID]queries.GetUserParcelsQueryResponse

	onChange func(queries.GetUserParcelsQueryResponse)
}

// NewParcelStore creates a store; onChange fires for every applied snapshot
// and may be nil.
func NewParcelStore(onChange func(queries.GetUserParcelsQueryResponse)) *ParcelStore {
	return &ParcelStore{
		parcels:  make(map[kernel.UUID]queries.GetUserParcelsQueryResponse),
		onChange: onChange,
	}
}

// Apply reconciles one snapshot. It reports whether the snapshot was newer
// than the stored state; stale and identical versions are ignored.
func (s *ParcelStore) Apply(snapshot queries.GetUserParcelsQueryResponse) bool {
	s.mu.Lock()
	current, known := s.parcels[snapshot.ID]
	if known && snapshot.Version <= current.Version {
		s.mu.Unlock()
		return false
	}
	s.parcels[snapshot.ID] = snapshot
	s.mu.Unlock()

	if s.onChange != nil {
		s.onChange(snapshot)
	}
	return true
}

// Get returns the stored snapshot of one parcel.
func (s *ParcelStore) Get(id kernel.UUID) (queries.GetUserParcelsQueryResponse, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	snapshot, ok := s.parcels[id]
	return snapshot, ok
}

// FetchFunc loads the current parcel list from the server.
type FetchFunc func(ctx context.Context) ([]queries.GetUserParcelsQueryResponse, error)

// Poller is the bounded-interval fallback for sessions whose push connection
// is unavailable. Every poll runs through the same store as pushed updates,
// so the two paths reconcile instead of racing.
type Poller struct {
	clock    clockwork.Clock
	interval time.Duration
	fetch    FetchFunc
	store    *ParcelStore
}

// DefaultPollInterval is the fallback poll cadence.
const DefaultPollInterval = 30 * time.Second

// NewPoller creates a poller feeding the given store.
func NewPoller(clock clockwork.Clock, interval time.Duration, fetch FetchFunc, store *ParcelStore) *Poller {
	return &Poller{
		clock:    clock,
		interval: interval,
		fetch:    fetch,
		store:    store,
	}
}

// Run polls until the context is cancelled. Fetch failures are logged and
// retried on the next interval; polling is a fallback, not a guarantee.
func (p *Poller) Run(ctx context.Context) {
	ticker := p.clock.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.Chan():
			p.poll(ctx)
		}
	}
}

func (p *Poller) poll(ctx context.Context) {
	snapshots, err := p.fetch(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("fallback poll failed")
		return
	}

	applied := 0
	for _, snapshot := range snapshots {
		if p.store.Apply(snapshot) {
			applied++
		}
	}

	if applied > 0 {
		log.Debug().Int("applied", applied).Msg("fallback poll reconciled updates")
	}
}
