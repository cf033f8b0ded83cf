// Package replicator implements the Replicator component (spec §4.2): the
// gossip push path and the anti-entropy pull path. Like Store, it is one
// receiver loop over a bounded channel (spec §5). It keeps no peer list
// and no lock of its own: every round asks the discovery adapter for a
// fresh peer list and works on that round-local slice (spec §9 "Peer list
// lifetime"). The clock itself is never cached here either; every round
// re-fetches it from the Store.
//
// The HTTP fan-out-with-timeout shape follows the reference
// distributed-kvstore codebase's Replicator.sendReplicateRequest, adapted
// from "replicate to a write quorum and wait for acks" to "gossip to up
// to F peers and swallow failures", since this spec's replication is
// fire-and-forget, never quorum-blocking (spec §4.2, §9).
package replicator

import (
	"log"
	"net/http"
	"os"
	"time"

	"clipsync/internal/clipboard"
	"clipsync/internal/clock"
	"clipsync/internal/discovery"
	"clipsync/internal/entrykey"
	"clipsync/internal/store"
)

// DefaultFanout is F from spec §4.2: the number of online peers gossiped
// to per local write.
const DefaultFanout = 5

// DefaultAntiEntropyInterval is T_AE from spec §4.2.
const DefaultAntiEntropyInterval = 3 * time.Minute

const requestTimeout = 5 * time.Second

const jobQueueCapacity = 100

// Transmit is the message the local command surface and the inbound
// gossip handler both send to request an outbound gossip round (spec
// §4.2). Clock is nil for a freshly originated local write (the
// Replicator fills in TTL=1 and the current local clock snapshot itself);
// it is set to the remote's clock when re-gossiping after an inbound
// receipt, together with an already-decremented TTL.
type Transmit struct {
	Key   entrykey.Key
	Entry clipboard.Entry
	TTL   uint64
	Clock clock.Clock
}

type job struct {
	transmit *Transmit
	tick     bool
	done     chan struct{}
}

// Replicator drives gossip and anti-entropy for one host.
type Replicator struct {
	jobs       chan job
	quit       chan struct{}
	store      *store.Store
	discovery  discovery.Adapter
	selfHostID clock.HostID
	fanout     int
	httpClient *http.Client
	logger     *log.Logger
}

// New creates a Replicator and starts its receiver loop. fanout<=0 uses
// DefaultFanout.
func New(s *store.Store, disc discovery.Adapter, selfHostID clock.HostID, fanout int) *Replicator {
	if fanout <= 0 {
		fanout = DefaultFanout
	}
	r := &Replicator{
		jobs:       make(chan job, jobQueueCapacity),
		quit:       make(chan struct{}),
		store:      s,
		discovery:  disc,
		selfHostID: selfHostID,
		fanout:     fanout,
		httpClient: &http.Client{Timeout: requestTimeout},
		logger:     log.New(os.Stderr, "[replicator] ", log.LstdFlags),
	}
	go r.run()
	return r
}

// Close stops the receiver loop. In-flight HTTP calls are not waited for;
// letting them get cancelled by the process exiting is acceptable per
// spec §5's cancellation rule (equivalent to message loss).
func (r *Replicator) Close() {
	close(r.quit)
}

func (r *Replicator) run() {
	for {
		select {
		case j := <-r.jobs:
			switch {
			case j.transmit != nil:
				r.gossipRound(*j.transmit)
			case j.tick:
				r.antiEntropyRound()
			}
			if j.done != nil {
				close(j.done)
			}
		case <-r.quit:
			return
		}
	}
}

// Transmit enqueues a gossip round; fire-and-forget from the caller's
// perspective (spec §4.2's Transmit message has no reply).
func (r *Replicator) Transmit(t Transmit) {
	r.jobs <- job{transmit: &t}
}

// Tick runs one anti-entropy sweep and blocks until it completes, mirroring
// spec §4.2 step 3 ("Reply to the tick caller with OK").
func (r *Replicator) Tick() {
	done := make(chan struct{})
	r.jobs <- job{tick: true, done: done}
	<-done
}

// Receive handles an inbound POST /gossip payload (spec §4.2 "Gossip
// (received)"). It is called directly from the peer HTTP handler's
// goroutine rather than routed through the job queue: it touches no
// Replicator-private state, only the already-serialized Store and (for
// re-gossip) the job queue itself, so no additional serialization is
// needed here (spec §4.2 "Responsibilities it must NOT have").
func (r *Replicator) Receive(clockRemote clock.Clock, key entrykey.Key, entry clipboard.Entry, ttl uint64) error {
	if _, err := r.store.WriteReplicated(key, entry); err != nil {
		return err
	}

	localClock, err := r.store.LoadClock()
	if err != nil {
		return err
	}

	if ttl > 0 && clock.IsOutdated(localClock, clockRemote) {
		r.Transmit(Transmit{Key: key, Entry: entry, TTL: ttl - 1, Clock: clockRemote})
	}

	return r.store.MergeClock(clockRemote)
}
