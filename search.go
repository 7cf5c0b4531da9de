package gridpath

import (
	"container/heap"
	"context"

	"github.com/zyedidia/generic/mapset"

	"github.com/pdrpinto/gridpath/internal"
)

// search holds the state of one A* run. It is never shared between runs.
type search struct {
	bounds        Bounds
	start         Coord
	target        Coord
	maxExpansions int
	pool          *workerPool

	openSet    frontier
	openSetMap map[Coord]*frontierItem
	closedSet  mapset.Set[Coord]
	cameFrom   map[Coord]Coord

	expandedNodes int
	current       *frontierItem
	done          bool
	found         bool
	path          []Coord
}

func newSearch(ctx context.Context, bounds Bounds, start, target Coord, options Options) *search {
	s := &search{
		bounds:        bounds,
		start:         start,
		target:        target,
		maxExpansions: options.MaxExpansions,
		openSet:       make(frontier, 0),
		openSetMap:    make(map[Coord]*frontierItem),
		closedSet:     mapset.New[Coord](),
		cameFrom:      make(map[Coord]Coord),
	}
	if options.NumberOfWorkers > 1 {
		s.pool = startWorkers(ctx, options.NumberOfWorkers)
	}

	heap.Init(&s.openSet)
	h := Manhattan(start, target)
	startItem := &frontierItem{Pos: start, G: 0, H: h, F: h}
	heap.Push(&s.openSet, startItem)
	s.openSetMap[start] = startItem
	return s
}

// step extracts one node from the frontier and expands it.
// It is a no-op once the search is done.
func (s *search) step(ctx context.Context) error {
	if s.done {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if s.openSet.Len() == 0 {
		s.done = true
		return nil
	}
	if s.maxExpansions > 0 && s.expandedNodes >= s.maxExpansions {
		return ErrExpansionLimit
	}

	currentItem := heap.Pop(&s.openSet).(*frontierItem)
	delete(s.openSetMap, currentItem.Pos)
	s.current = currentItem
	s.expandedNodes++

	if currentItem.Pos == s.target {
		s.done = true
		s.found = true
		s.path = internal.ReconstructPath(s.cameFrom, currentItem.Pos)
		return nil
	}
	s.closedSet.Put(currentItem.Pos)

	tasks := make([]expandTask, 0, len(directions))
	for _, direction := range directions {
		neighbor := currentItem.Pos.add(direction)
		if !s.bounds.Contains(neighbor) || s.closedSet.Has(neighbor) {
			continue
		}
		tasks = append(tasks, expandTask{
			From:   currentItem.Pos,
			To:     neighbor,
			FromG:  currentItem.G,
			Target: s.target,
		})
	}

	if s.pool == nil {
		for _, task := range tasks {
			s.relax(propose(task))
		}
		return nil
	}
	return s.pool.run(ctx, tasks, s.relax)
}

// relax applies a proposal: insert when the position is new to the frontier,
// update in place when it strictly improves g.
func (s *search) relax(proposal relaxProposal) {
	if s.closedSet.Has(proposal.To) {
		return
	}
	item, inOpen := s.openSetMap[proposal.To]
	if !inOpen {
		item = &frontierItem{
			Pos: proposal.To,
			G:   proposal.G,
			H:   proposal.H,
			F:   proposal.G + proposal.H,
		}
		heap.Push(&s.openSet, item)
		s.openSetMap[proposal.To] = item
		s.cameFrom[proposal.To] = proposal.From
		return
	}
	if proposal.G < item.G {
		item.G = proposal.G
		item.F = proposal.G + item.H
		heap.Fix(&s.openSet, item.IndexInQueue)
		s.cameFrom[proposal.To] = proposal.From
	}
}

func (s *search) result() Result {
	res := Result{ExpandedNodes: s.expandedNodes, Found: s.found}
	if s.found {
		res.Path = s.path
		res.Cost = s.current.G
	}
	return res
}
