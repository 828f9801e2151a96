package termdict

import (
	"context"
	"sort"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"GoSubseq/internal/automaton"
)

var ErrNoSegments = errors.New("no dictionaries to search")

// Result holds the terms accepted by an automaton, in ascending order.
type Result struct {
	Terms []string

	// StatesVisited counts dictionary nodes reached by stepping the automaton.
	StatesVisited int
	// ShortCircuits counts subtrees emitted whole because the automaton
	// would always match below them.
	ShortCircuits int
	// Pruned counts edges skipped because CanMatch was false.
	Pruned int

	// Truncated is set when the search stopped early; Terms is then a
	// sorted prefix of the full answer.
	Truncated bool

	// stopKey is the key the walk stopped at when Truncated. Every key
	// sorting before it was fully decided.
	stopKey string
}

// Searcher intersects automata with term dictionaries.
// Term expansion happens here, never inside the automaton.
type Searcher struct {
	cfg     Config
	log     *zerolog.Logger
	metrics *Metrics
}

// NewSearcher creates a Searcher. A nil log discards output and nil metrics
// record nothing.
func NewSearcher(cfg Config, log *zerolog.Logger, metrics *Metrics) *Searcher {
	if log == nil {
		nop := zerolog.Nop()
		log = &nop
	}
	return &Searcher{
		cfg:     cfg.withDefaults(),
		log:     log,
		metrics: metrics,
	}
}

// Search returns every key of d accepted by a.
// When a limit is hit the partial result is returned along with the error.
func (s *Searcher) Search(ctx context.Context, d *Dict, a automaton.Automaton) (*Result, error) {
	res, err := s.search(ctx, d, a)
	s.metrics.observe(res, err)
	s.logResult(res, err, 1)
	return res, err
}

// FindSubsequence returns every key of d that contains query as a
// subsequence, ignoring ASCII case on both sides.
func (s *Searcher) FindSubsequence(ctx context.Context, d *Dict, query string) (*Result, error) {
	pattern := foldASCII(query)
	s.log.Debug().Str("pattern", string(pattern)).Int("keys", d.Len()).Msg("subsequence search")
	return s.Search(ctx, d, automaton.NewSubsequenceAutomaton(pattern))
}

// SearchSegments searches several dictionaries concurrently and merges the
// results into one sorted, deduplicated term list. The first failing segment
// cancels the others.
func (s *Searcher) SearchSegments(ctx context.Context, dicts []*Dict, a automaton.Automaton) (*Result, error) {
	if len(dicts) == 0 {
		return nil, ErrNoSegments
	}

	results := make([]*Result, len(dicts))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.cfg.Concurrency)
	for i, d := range dicts {
		g.Go(func() error {
			res, err := s.search(gctx, d, a)
			results[i] = res
			if err != nil {
				return errors.Wrapf(err, "segment %d", i)
			}
			return nil
		})
	}
	err := g.Wait()

	merged := mergeResults(results, s.cfg.MaxTermsMatched)
	if err == nil && merged.Truncated {
		err = ErrMatchLimitExceeded
	}
	if err != nil {
		merged.Truncated = true
	}
	s.metrics.observe(merged, err)
	s.logResult(merged, err, len(dicts))
	return merged, err
}

func (s *Searcher) search(ctx context.Context, d *Dict, a automaton.Automaton) (*Result, error) {
	if s.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.cfg.Timeout)
		defer cancel()
	}

	w := &walker{
		a:    a,
		exec: NewExecutionContext(ctx, s.cfg.MaxStatesVisited, s.cfg.MaxTermsMatched, s.cfg.CheckInterval),
		res:  &Result{},
	}
	err := w.walk(d.rootNode(), a.Start())
	w.res.StatesVisited = w.exec.StatesVisited
	if err != nil {
		w.res.Truncated = true
	}
	return w.res, err
}

func (s *Searcher) logResult(res *Result, err error, segments int) {
	if err != nil {
		s.log.Warn().Err(err).
			Int("segments", segments).
			Int("terms", len(res.Terms)).
			Int("states_visited", res.StatesVisited).
			Msg("term dictionary search stopped early")
		return
	}
	s.log.Debug().
		Int("segments", segments).
		Int("terms", len(res.Terms)).
		Int("states_visited", res.StatesVisited).
		Int("short_circuits", res.ShortCircuits).
		Int("pruned", res.Pruned).
		Msg("term dictionary search finished")
}

// walker performs a depth-first, in-order intersection of one automaton with
// one trie. key holds the path from the root to the current node.
type walker struct {
	a    automaton.Automaton
	exec *ExecutionContext
	res  *Result
	key  []byte
}

func (w *walker) walk(n *node, state automaton.State) error {
	if err := w.exec.VisitState(); err != nil {
		return w.stop(w.key, err)
	}

	if w.a.WillAlwaysMatch(state) {
		w.res.ShortCircuits++
		return w.emitAll(n)
	}

	if n.final && w.a.IsAccept(state) {
		if err := w.emit(w.key); err != nil {
			return err
		}
	}

	for i, c := range n.labels {
		next := w.a.Step(state, c)
		if !w.a.CanMatch(next) {
			w.res.Pruned++
			continue
		}
		w.key = append(w.key, c)
		err := w.walk(n.children[i], next)
		w.key = w.key[:len(w.key)-1]
		if err != nil {
			return err
		}
	}
	return nil
}

// emitAll emits every key below n without stepping the automaton.
func (w *walker) emitAll(n *node) error {
	var err error
	n.each(w.key, func(key []byte) bool {
		if err = w.exec.CheckLimits(); err != nil {
			err = w.stop(key, err)
			return false
		}
		err = w.emit(key)
		return err == nil
	})
	return err
}

func (w *walker) emit(key []byte) error {
	if err := w.exec.AddTerm(); err != nil {
		return w.stop(key, err)
	}
	w.res.Terms = append(w.res.Terms, string(key))
	return nil
}

// stop records key as the point where the walk gave up and returns err.
func (w *walker) stop(key []byte, err error) error {
	w.res.stopKey = string(key)
	return err
}

// mergeResults combines per-segment results. Terms at or after the earliest
// stop key of a truncated segment are dropped so the merged terms stay a
// sorted prefix of the full answer.
func mergeResults(results []*Result, maxTerms int) *Result {
	merged := &Result{}
	for _, r := range results {
		if r == nil {
			continue
		}
		if r.Truncated && (!merged.Truncated || r.stopKey < merged.stopKey) {
			merged.stopKey = r.stopKey
		}
		merged.Terms = append(merged.Terms, r.Terms...)
		merged.StatesVisited += r.StatesVisited
		merged.ShortCircuits += r.ShortCircuits
		merged.Pruned += r.Pruned
		merged.Truncated = merged.Truncated || r.Truncated
	}

	sort.Strings(merged.Terms)
	unique := merged.Terms[:0]
	for _, t := range merged.Terms {
		if len(unique) > 0 && t == unique[len(unique)-1] {
			continue
		}
		unique = append(unique, t)
	}
	merged.Terms = unique

	if merged.Truncated {
		cut := sort.SearchStrings(merged.Terms, merged.stopKey)
		merged.Terms = merged.Terms[:cut]
	}

	if len(merged.Terms) > maxTerms {
		merged.Terms = merged.Terms[:maxTerms]
		merged.Truncated = true
	}
	return merged
}

// foldASCII returns a copy of s with ASCII uppercase letters lowered.
func foldASCII(s string) []byte {
	out := []byte(s)
	for i, b := range out {
		if 'A' <= b && b <= 'Z' {
			out[i] = b + ('a' - 'A')
		}
	}
	return out
}
