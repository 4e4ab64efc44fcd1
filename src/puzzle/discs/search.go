package discs

import (
	"context"
	"fmt"
	"math"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"bluediscs/src/arith/exact"
)

const (
	defaultWorkers = 4
	defaultChunk   = 10_000
)

// Options configures a Searcher. Zero fields take defaults: 4 workers,
// chunks of 10000 totals and a no-op logger. A nil Target means Half.
type Options struct {
	Target  *exact.Rational
	Workers int
	Chunk   uint64
	Logger  *zap.Logger
}

// Solution is an arrangement whose probability equals the search target.
type Solution struct {
	Blue, Total uint64
	Probability exact.Rational
}

// Searcher scans a range of totals for the smallest one that admits an
// exact arrangement. The range is cut into chunks that are scanned
// concurrently; chunks that start above an arrangement already found are
// skipped.
type Searcher struct {
	target  exact.Rational
	workers int
	chunk   uint64
	log     *zap.Logger
}

func NewSearcher(opts Options) *Searcher {
	s := &Searcher{
		target:  Half,
		workers: opts.Workers,
		chunk:   opts.Chunk,
		log:     opts.Logger,
	}
	if opts.Target != nil {
		s.target = *opts.Target
	}
	if s.workers <= 0 {
		s.workers = defaultWorkers
	}
	if s.chunk == 0 {
		s.chunk = defaultChunk
	}
	if s.log == nil {
		s.log = zap.NewNop()
	}
	return s
}

// Search returns the arrangement with the smallest total in
// [minTotal, maxTotal]. It returns ErrNotFound if there is none, and the
// context error if ctx ends first.
func (s *Searcher) Search(ctx context.Context, minTotal, maxTotal uint64) (Solution, error) {
	if err := validCounts(0, minTotal); err != nil {
		return Solution{}, err
	}
	if err := validCounts(0, maxTotal); err != nil {
		return Solution{}, err
	}
	if maxTotal < minTotal {
		return Solution{}, fmt.Errorf("%w: empty range %d..%d", ErrInvalidCounts, minTotal, maxTotal)
	}

	started := time.Now()
	s.log.Info("search started",
		zap.Uint64("min_total", minTotal),
		zap.Uint64("max_total", maxTotal),
		zap.Stringer("target", s.target),
		zap.Int("workers", s.workers),
		zap.Uint64("chunk", s.chunk),
	)

	var (
		mu   sync.Mutex
		best Solution
		// bound is the smallest total found so far, MaxUint64 until then.
		bound atomic.Uint64
	)
	bound.Store(math.MaxUint64)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)

	for start := minTotal; start <= maxTotal; {
		if gctx.Err() != nil || bound.Load() < start {
			break
		}
		end := start + s.chunk - 1
		if end < start || end > maxTotal {
			end = maxTotal
		}

		lo, hi := start, end
		g.Go(func() error {
			sol, ok, err := s.scan(gctx, lo, hi, &bound)
			if err != nil || !ok {
				return err
			}
			mu.Lock()
			if best.Total == 0 || sol.Total < best.Total {
				best = sol
				bound.Store(sol.Total)
			}
			mu.Unlock()
			s.log.Info("arrangement found",
				zap.Uint64("blue", sol.Blue),
				zap.Uint64("total", sol.Total),
			)
			return nil
		})

		if end == maxTotal {
			break
		}
		start = end + 1
	}

	if err := g.Wait(); err != nil {
		return Solution{}, err
	}
	if err := ctx.Err(); err != nil {
		return Solution{}, err
	}
	if best.Total == 0 {
		return Solution{}, fmt.Errorf("%w: totals %d..%d", ErrNotFound, minTotal, maxTotal)
	}

	s.log.Info("search finished",
		zap.Uint64("blue", best.Blue),
		zap.Uint64("total", best.Total),
		zap.Duration("elapsed", time.Since(started)),
	)
	return best, nil
}

// scan checks totals lo..hi in order and returns the first arrangement. It
// stops early once bound drops below the next total.
func (s *Searcher) scan(ctx context.Context, lo, hi uint64, bound *atomic.Uint64) (Solution, bool, error) {
	s.log.Debug("scanning chunk", zap.Uint64("from", lo), zap.Uint64("to", hi))
	for total := lo; total <= hi; total++ {
		if err := ctx.Err(); err != nil {
			return Solution{}, false, err
		}
		if bound.Load() < total {
			return Solution{}, false, nil
		}
		blue, ok, err := BlueFor(ctx, total, s.target)
		if err != nil {
			return Solution{}, false, err
		}
		if ok {
			p, err := Probability(blue, total)
			if err != nil {
				return Solution{}, false, err
			}
			return Solution{Blue: blue, Total: total, Probability: p}, true, nil
		}
	}
	return Solution{}, false, nil
}
