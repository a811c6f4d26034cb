package club

import (
	"github.com/charmbracelet/log"
	"github.com/mauv0809/padel-ledger/internal/ledger"
)

// Subscribe registers a listener for snapshots. The current snapshot is
// delivered right away and a fresh one after every successful write. Each
// channel holds only the latest snapshot, so a slow reader skips intermediate
// states. The returned func unsubscribes and closes the channel.
func (s *store) Subscribe() (<-chan ledger.Snapshot, func()) {
	ch := make(chan ledger.Snapshot, 1)

	s.subMu.Lock()
	id := s.nextID
	s.nextID++
	s.subs[id] = ch
	if snap, err := s.Snapshot(); err == nil {
		deliver(ch, snap)
	} else {
		log.Error("Failed to read initial snapshot for subscriber", "error", err)
	}
	s.subMu.Unlock()

	cancel := func() {
		s.subMu.Lock()
		defer s.subMu.Unlock()
		if _, ok := s.subs[id]; ok {
			delete(s.subs, id)
			close(ch)
		}
	}
	return ch, cancel
}

// broadcast holds subMu while reading the snapshot so deliveries happen in
// write order.
func (s *store) broadcast() {
	s.subMu.Lock()
	defer s.subMu.Unlock()
	if len(s.subs) == 0 {
		return
	}

	snap, err := s.Snapshot()
	if err != nil {
		log.Error("Failed to read snapshot for subscribers", "error", err)
		return
	}
	for _, ch := range s.subs {
		deliver(ch, snap)
	}
}

// deliver replaces whatever is waiting in ch with snap. Callers hold subMu.
func deliver(ch chan ledger.Snapshot, snap ledger.Snapshot) {
	select {
	case <-ch:
	default:
	}
	select {
	case ch <- snap:
	default:
	}
}
