package realtime

import (
	"context"
	"sync"
	"time"

	"parcelmatch/internal/core/domain/model/kernel"

	"github.com/jonboulle/clockwork"
)

// Session is the explicit per-login context: the user's identity, one
// distributor over one transport connection, the countdown registry, and the
// poll fallback. It is created on login and torn down on logout; nothing in
// this package lives in package-level state.
type Session struct {
	userID      kernel.UUID
	distributor *Distributor
	poller      *Poller
	clock       clockwork.Clock

	mu         sync.Mutex
	countdowns map[kernel.UUID]*Countdown

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewSession wires a session for one user. The transport is not started
// until Start.
func NewSession(userID kernel.UUID, transport Transport, fetch FetchFunc, clock clockwork.Clock) (*Session, error) {
	if err := userID.Validate(); err != nil {
		return nil, err
	}

	store := NewParcelStore(nil)
	return &Session{
		userID:      userID,
		distributor: NewDistributor(transport),
		poller:      NewPoller(clock, DefaultPollInterval, fetch, store),
		clock:       clock,
		countdowns:  make(map[kernel.UUID]*Countdown),
	}, nil
}

// UserID returns the session's user.
func (s *Session) UserID() kernel.UUID {
	return s.userID
}

// Distributor exposes the session's event distributor.
func (s *Session) Distributor() *Distributor {
	return s.distributor
}

// Store exposes the reconciling parcel store shared by push and poll.
func (s *Session) Store() *ParcelStore {
	return s.poller.store
}

// Start runs the transport and the poll fallback until Close.
func (s *Session) Start(ctx context.Context) {
	runCtx, cancel := context.WithCancel(ctx)
	s.cancel = cancel

	s.wg.Add(2)
	go func() {
		defer s.wg.Done()
		_ = s.distributor.Start(runCtx)
	}()
	go func() {
		defer s.wg.Done()
		s.poller.Run(runCtx)
	}()
}

// TrackDeadline starts a countdown for one parcel's bidding deadline,
// replacing any countdown already tracking that parcel.
func (s *Session) TrackDeadline(parcelID kernel.UUID, deadline time.Time, onTick func(string), onExpire func()) {
	countdown := NewCountdown(s.clock, deadline, onTick, onExpire)

	s.mu.Lock()
	if existing, ok := s.countdowns[parcelID]; ok {
		existing.Stop()
	}
	s.countdowns[parcelID] = countdown
	s.mu.Unlock()

	countdown.Start()
}

// StopDeadline stops and forgets the countdown for one parcel.
func (s *Session) StopDeadline(parcelID kernel.UUID) {
	s.mu.Lock()
	countdown, ok := s.countdowns[parcelID]
	delete(s.countdowns, parcelID)
	s.mu.Unlock()

	if ok {
		countdown.Stop()
	}
}

// Close tears the session down: every countdown stops, the transport
// disconnects and the poller exits.
func (s *Session) Close() {
	s.mu.Lock()
	countdowns := make([]*Countdown, 0, len(s.countdowns))
	for _, c := range s.countdowns {
		countdowns = append(countdowns, c)
	}
	s.countdowns = make(map[kernel.UUID]*Countdown)
	s.mu.Unlock()

	for _, c := range countdowns {
		c.Stop()
	}

	if s.cancel != nil {
		s.cancel()
	}
	s.wg.Wait()
}
