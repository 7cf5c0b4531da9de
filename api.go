package gridpath

import (
	"context"
	"io"
	"time"

	"github.com/sirupsen/logrus"
)

// Result contains the outcome of a search.
//
// Found is false only when the frontier was exhausted without reaching the
// target. A search from a cell to itself is Found with an empty Path.
type Result struct {
	// Path runs from the cell next to start through target; start is not included.
	Path          []Coord
	Cost          int
	ExpandedNodes int
	Found         bool
}

// Options defines parameters for the search.
type Options struct {
	NumberOfWorkers int
	MaxExpansions   int
	Logger          logrus.FieldLogger
}

// Option is a function that modifies Options.
type Option func(*Options)

// WithWorkers specifies how many worker goroutines should compute neighbor
// proposals. Values below 2 keep the search on the calling goroutine.
func WithWorkers(numberOfWorkers int) Option {
	return func(options *Options) { options.NumberOfWorkers = numberOfWorkers }
}

// WithMaxExpansions caps the number of frontier extractions. Zero means no cap.
func WithMaxExpansions(maxExpansions int) Option {
	return func(options *Options) { options.MaxExpansions = maxExpansions }
}

// WithLogger sets the logger used for debug traces.
func WithLogger(logger logrus.FieldLogger) Option {
	return func(options *Options) { options.Logger = logger }
}

var silentLogger = func() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}()

func buildOptions(options []Option) Options {
	searchOptions := Options{NumberOfWorkers: 1, Logger: silentLogger}
	for _, option := range options {
		option(&searchOptions)
	}
	if searchOptions.Logger == nil {
		searchOptions.Logger = silentLogger
	}
	return searchOptions
}

// PathFinder searches a grid of fixed dimensions.
type PathFinder struct {
	bounds  Bounds
	options []Option
}

// New returns a PathFinder for a rows x cols grid. Options given here apply to
// every search and can be overridden per call.
func New(rows, cols int, options ...Option) (*PathFinder, error) {
	bounds := Bounds{Rows: rows, Cols: cols}
	if err := bounds.validate(); err != nil {
		return nil, err
	}
	return &PathFinder{bounds: bounds, options: options}, nil
}

// Bounds returns the grid dimensions.
func (p *PathFinder) Bounds() Bounds { return p.bounds }

// FindPath runs A* from start to target.
func (p *PathFinder) FindPath(ctx context.Context, start, target Coord, options ...Option) (Result, error) {
	return FindPath(ctx, p.bounds, start, target, append(append([]Option{}, p.options...), options...)...)
}

// FindPath runs A* from start to target on a grid with the given bounds.
func FindPath(ctx context.Context, bounds Bounds, start, target Coord, options ...Option) (Result, error) {
	if err := validateRequest(bounds, start, target); err != nil {
		return Result{}, err
	}

	searchOptions := buildOptions(options)
	logger := searchOptions.Logger.WithFields(logrus.Fields{
		"start":  start.String(),
		"target": target.String(),
	})

	searchContext, cancel := context.WithCancel(ctx)
	defer cancel()

	began := time.Now()
	s := newSearch(searchContext, bounds, start, target, searchOptions)
	for !s.done {
		if err := s.step(searchContext); err != nil {
			logger.WithError(err).WithField("expanded", s.expandedNodes).Debug("search aborted")
			return s.result(), err
		}
	}

	res := s.result()
	logger.WithFields(logrus.Fields{
		"found":    res.Found,
		"length":   len(res.Path),
		"expanded": res.ExpandedNodes,
		"elapsed":  time.Since(began),
	}).Debug("search finished")
	return res, nil
}

func validateRequest(bounds Bounds, start, target Coord) error {
	if err := bounds.validate(); err != nil {
		return err
	}
	if err := bounds.check("start", start); err != nil {
		return err
	}
	return bounds.check("target", target)
}
