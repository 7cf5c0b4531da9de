package gridpath

import (
	"context"
)

// StepSnapshot exposes the per-iteration state of the search
type StepSnapshot struct {
	Current   Coord
	Open      map[Coord]bool
	Closed    map[Coord]bool
	CameFrom  map[Coord]Coord
	Done      bool
	Found     bool
	Path      []Coord
	StepIndex int
}

// Stepper runs a search one frontier extraction at a time.
// It is not safe for concurrent use.
type Stepper struct {
	ctx    context.Context
	cancel context.CancelFunc
	search *search
}

// NewStepper creates a stepper over the PathFinder's grid. Start and target are
// validated exactly as in FindPath. Workers stop once a step reports Done;
// call Close to release them from a search abandoned earlier.
func (p *PathFinder) NewStepper(parent context.Context, start, target Coord, options ...Option) (*Stepper, error) {
	if err := validateRequest(p.bounds, start, target); err != nil {
		return nil, err
	}
	opts := buildOptions(append(append([]Option{}, p.options...), options...))

	ctx, cancel := context.WithCancel(parent)
	return &Stepper{
		ctx:    ctx,
		cancel: cancel,
		search: newSearch(ctx, p.bounds, start, target, opts),
	}, nil
}

// Close stops the workers
func (s *Stepper) Close() {
	if s.cancel != nil {
		s.cancel()
	}
}

// Result returns the outcome so far. It is final once a snapshot reports Done.
func (s *Stepper) Result() Result { return s.search.result() }

// Step advances the search by one node expansion and returns a snapshot.
// Once the search is done every further call returns the final snapshot.
func (s *Stepper) Step() (StepSnapshot, error) {
	if err := s.search.step(s.ctx); err != nil {
		s.Close()
		return StepSnapshot{Done: true, StepIndex: s.search.expandedNodes}, err
	}
	if s.search.done {
		s.Close()
	}
	return s.snapshot(), nil
}

func (s *Stepper) snapshot() StepSnapshot {
	snap := StepSnapshot{
		Open:      make(map[Coord]bool, len(s.search.openSetMap)),
		Closed:    make(map[Coord]bool, s.search.closedSet.Size()),
		CameFrom:  make(map[Coord]Coord, len(s.search.cameFrom)),
		Done:      s.search.done,
		Found:     s.search.found,
		StepIndex: s.search.expandedNodes,
	}
	if s.search.current != nil {
		snap.Current = s.search.current.Pos
	}
	for k := range s.search.openSetMap {
		snap.Open[k] = true
	}
	s.search.closedSet.Each(func(k Coord) {
		snap.Closed[k] = true
	})
	for k, v := range s.search.cameFrom {
		snap.CameFrom[k] = v
	}
	if s.search.found {
		snap.Path = append([]Coord{}, s.search.path...)
	}
	return snap
}
