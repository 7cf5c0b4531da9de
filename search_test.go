package gridpath

import (
	"container/heap"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRelaxImprovesFrontierNode(t *testing.T) {
	s := newSearch(context.Background(), Bounds{Rows: 6, Cols: 6}, Coord{0, 0}, Coord{5, 5}, buildOptions(nil))
	node := Coord{3, 3}

	s.relax(relaxProposal{From: Coord{2, 3}, To: node, G: 9, H: 4})
	item, ok := s.openSetMap[node]
	require.True(t, ok)
	assert.Equal(t, 9, item.G)
	assert.Equal(t, 13, item.F)
	assert.Equal(t, Coord{2, 3}, s.cameFrom[node])
	assert.Equal(t, Coord{0, 0}, s.openSet[0].Pos, "start has the lower f")

	s.relax(relaxProposal{From: Coord{3, 2}, To: node, G: 2, H: 4})
	assert.Same(t, item, s.openSetMap[node], "updated in place")
	assert.Equal(t, 2, item.G)
	assert.Equal(t, 6, item.F)
	assert.Equal(t, Coord{3, 2}, s.cameFrom[node])
	assert.Equal(t, node, s.openSet[0].Pos, "heap follows the new f")

	s.relax(relaxProposal{From: Coord{4, 3}, To: node, G: 7, H: 4})
	assert.Equal(t, 2, item.G)
	assert.Equal(t, 6, item.F)
	assert.Equal(t, Coord{3, 2}, s.cameFrom[node])

	closed := Coord{1, 0}
	s.closedSet.Put(closed)
	s.relax(relaxProposal{From: Coord{0, 0}, To: closed, G: 1, H: 9})
	_, inOpen := s.openSetMap[closed]
	assert.False(t, inOpen)
	_, hasPredecessor := s.cameFrom[closed]
	assert.False(t, hasPredecessor)

	assert.Equal(t, 2, s.openSet.Len())
	first := heap.Pop(&s.openSet).(*frontierItem)
	second := heap.Pop(&s.openSet).(*frontierItem)
	assert.Equal(t, node, first.Pos)
	assert.Equal(t, Coord{0, 0}, second.Pos)
}
