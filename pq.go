package gridpath

// frontierItem is the single live record for a position in the open set.
type frontierItem struct {
	Pos          Coord
	G            int
	H            int
	F            int
	IndexInQueue int
}

// frontier orders items by f, then h, then row, then col.
type frontier []*frontierItem

func (queue frontier) Len() int { return len(queue) }
func (queue frontier) Less(i, j int) bool {
	a, b := queue[i], queue[j]
	if a.F != b.F {
		return a.F < b.F
	}
	if a.H != b.H {
		return a.H < b.H
	}
	if a.Pos.Row != b.Pos.Row {
		return a.Pos.Row < b.Pos.Row
	}
	return a.Pos.Col < b.Pos.Col
}
func (queue frontier) Swap(i, j int) {
	queue[i], queue[j] = queue[j], queue[i]
	queue[i].IndexInQueue = i
	queue[j].IndexInQueue = j
}

func (queue *frontier) Push(x any) {
	item := x.(*frontierItem)
	item.IndexInQueue = len(*queue)
	*queue = append(*queue, item)
}

func (queue *frontier) Pop() any {
	oldQueue := *queue
	n := len(oldQueue)
	item := oldQueue[n-1]
	oldQueue[n-1] = nil
	item.IndexInQueue = -1
	*queue = oldQueue[:n-1]
	return item
}
