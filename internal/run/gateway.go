package run

import (
	"github.com/vovakirdan/moto-rush/internal/leaderboard"
)

// Store is the slice of the leaderboard API the run machine needs. The
// SQLite store satisfies it; tests substitute stubs.
type Store interface {
	Submit(e leaderboard.Entry) (int64, error)
	TopN(weekKey string, n int) ([]leaderboard.Entry, error)
}

// ResultKind discriminates gateway results.
type ResultKind int

const (
	// ResultFetch carries the week's top entries.
	ResultFetch ResultKind = iota
	// ResultSubmit carries the outcome of a score submission.
	ResultSubmit
)

// Result is one completed asynchronous operation. Generation is the run
// generation captured when the operation was launched; the machine drops
// results whose generation no longer matches.
type Result struct {
	Kind       ResultKind
	Generation uint64
	Entries    []leaderboard.Entry
	Err        error
}

// Gateway runs leaderboard calls off the update loop. Every call is
// fire-and-forget: no timeouts, no retries. Results arrive on a buffered
// channel the machine drains once per update; if the buffer is somehow
// full the result is dropped, which the generation gate treats the same
// as a slow reply.
type Gateway struct {
	store   Store
	results chan Result
}

// NewGateway wraps a store. A nil store yields a gateway whose operations
// complete immediately with errors, degrading to local-only views.
func NewGateway(store Store) *Gateway {
	return &Gateway{
		store:   store,
		results: make(chan Result, 16),
	}
}

// Fetch requests the week's top entries.
func (g *Gateway) Fetch(generation uint64, weekKey string, n int) {
	go func() {
		r := Result{Kind: ResultFetch, Generation: generation}
		if g.store == nil {
			r.Err = errNoStore
		} else {
			r.Entries, r.Err = g.store.TopN(weekKey, n)
		}
		g.deliver(r)
	}()
}

// Submit records a finished run and then re-reads the week's top entries
// so the board shown after submission includes the new row.
func (g *Gateway) Submit(generation uint64, e leaderboard.Entry, topN int) {
	go func() {
		r := Result{Kind: ResultSubmit, Generation: generation}
		if g.store == nil {
			r.Err = errNoStore
		} else if _, err := g.store.Submit(e); err != nil {
			r.Err = err
		} else {
			r.Entries, r.Err = g.store.TopN(e.WeekKey, topN)
		}
		g.deliver(r)
	}()
}

func (g *Gateway) deliver(r Result) {
	select {
	case g.results <- r:
	default:
	}
}

// Drain returns every result that has arrived since the last call,
// without blocking.
func (g *Gateway) Drain() []Result {
	var out []Result
	for {
		select {
		case r := <-g.results:
			out = append(out, r)
		default:
			return out
		}
	}
}

type gatewayError string

func (e gatewayError) Error() string { return string(e) }

const errNoStore = gatewayError("run: no leaderboard store configured")
