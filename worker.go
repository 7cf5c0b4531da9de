package gridpath

import "context"

// expandTask represents a request from the orchestrator to the workers.
type expandTask struct {
	From   Coord
	To     Coord
	FromG  int
	Target Coord
}

// relaxProposal is the worker's suggestion for updating a path
type relaxProposal struct {
	From Coord
	To   Coord
	G    int
	H    int
}

func propose(task expandTask) relaxProposal {
	return relaxProposal{
		From: task.From,
		To:   task.To,
		G:    task.FromG + 1,
		H:    Manhattan(task.To, task.Target),
	}
}

// workerPool computes relax proposals off the orchestrator goroutine.
// Workers exit when ctx is done.
type workerPool struct {
	tasks     chan expandTask
	proposals chan relaxProposal
}

func startWorkers(ctx context.Context, numberOfWorkers int) *workerPool {
	pool := &workerPool{
		tasks:     make(chan expandTask),
		proposals: make(chan relaxProposal),
	}
	for i := 0; i < numberOfWorkers; i++ {
		go func() {
			for {
				select {
				case <-ctx.Done():
					return
				case task := <-pool.tasks:
					select {
					case <-ctx.Done():
						return
					case pool.proposals <- propose(task):
					}
				}
			}
		}()
	}
	return pool
}

// run hands tasks to the workers and feeds every proposal to apply.
// Tasks are sent from a separate goroutine so that a small pool never
// blocks on a full round trip.
func (pool *workerPool) run(ctx context.Context, tasks []expandTask, apply func(relaxProposal)) error {
	go func() {
		for _, task := range tasks {
			select {
			case <-ctx.Done():
				return
			case pool.tasks <- task:
			}
		}
	}()
	for range tasks {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case proposal := <-pool.proposals:
			apply(proposal)
		}
	}
	return nil
}
