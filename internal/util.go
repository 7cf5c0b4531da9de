package internal

import "fmt"

// ReconstructPath rebuilds the path ending at current from the cameFrom map.
// The walk stops at the first node without a predecessor, which is left out,
// so a search from a node to itself yields an empty, non-nil path.
func ReconstructPath[NodeType comparable](
	cameFrom map[NodeType]NodeType,
	current NodeType,
) []NodeType {
	path := make([]NodeType, 0)
	for {
		previousNode, exists := cameFrom[current]
		if !exists {
			break
		}
		path = append(path, current)
		current = previousNode
	}
	// reverse path
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}

	return path
}

// CheckPath verifies that path is a walk from start where every node is valid,
// consecutive nodes are adjacent and no node repeats. start counts as visited.
func CheckPath[NodeType comparable](
	start NodeType,
	path []NodeType,
	valid func(NodeType) bool,
	adjacent func(from, to NodeType) bool,
) error {
	seen := map[NodeType]bool{start: true}
	previous := start
	for i, node := range path {
		if !valid(node) {
			return fmt.Errorf("step %d: %v is not a valid node", i, node)
		}
		if !adjacent(previous, node) {
			return fmt.Errorf("step %d: %v is not adjacent to %v", i, node, previous)
		}
		if seen[node] {
			return fmt.Errorf("step %d: %v visited twice", i, node)
		}
		seen[node] = true
		previous = node
	}
	return nil
}
