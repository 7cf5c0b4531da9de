// Package gridpath provides A* shortest-path search over fixed-size 2D grids.
//
// It exposes two main entry points:
//
//   - PathFinder.FindPath: run the search to completion and get a Result.
//   - PathFinder.NewStepper: iterate the search one expansion at a time to drive UIs or debugging tools.
//
// Every cell is traversable and every orthogonal move costs 1, so the Manhattan
// distance is both the heuristic and, on success, the length of the returned path.
// All search state is allocated per call; a PathFinder can be shared freely.
package gridpath
