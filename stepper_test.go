package gridpath

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runStepper(t *testing.T, stepper *Stepper) []StepSnapshot {
	t.Helper()
	var snaps []StepSnapshot
	for i := 0; i < 1000; i++ {
		snap, err := stepper.Step()
		require.NoError(t, err)
		snaps = append(snaps, snap)
		if snap.Done {
			return snaps
		}
	}
	t.Fatal("stepper did not finish")
	return nil
}

func TestStepperMatchesFindPath(t *testing.T) {
	finder := mustFinder(t, 6, 6)
	ctx := context.Background()
	start, target := Coord{0, 0}, Coord{5, 5}

	want, err := finder.FindPath(ctx, start, target)
	require.NoError(t, err)

	for _, workers := range []int{1, 4} {
		stepper, err := finder.NewStepper(ctx, start, target, WithWorkers(workers))
		require.NoError(t, err)

		snaps := runStepper(t, stepper)
		last := snaps[len(snaps)-1]
		assert.True(t, last.Found)
		assert.Equal(t, want.Path, last.Path)
		assert.Equal(t, want.ExpandedNodes, last.StepIndex)
		assert.Equal(t, target, last.Current)
		assert.Equal(t, want, stepper.Result())
		stepper.Close()
	}
}

func TestStepperSnapshots(t *testing.T) {
	finder := mustFinder(t, 4, 4)
	stepper, err := finder.NewStepper(context.Background(), Coord{1, 1}, Coord{3, 2})
	require.NoError(t, err)
	defer stepper.Close()

	first, err := stepper.Step()
	require.NoError(t, err)
	assert.Equal(t, 1, first.StepIndex)
	assert.Equal(t, Coord{1, 1}, first.Current)
	assert.Equal(t, map[Coord]bool{{1, 1}: true}, first.Closed)
	assert.Equal(t, map[Coord]bool{{1, 2}: true, {2, 1}: true, {1, 0}: true, {0, 1}: true}, first.Open)
	assert.Equal(t, Coord{1, 1}, first.CameFrom[Coord{0, 1}])
	assert.False(t, first.Done)

	snaps := append([]StepSnapshot{first}, runStepper(t, stepper)...)
	for i, snap := range snaps {
		assert.Equal(t, i+1, snap.StepIndex)
		for c := range snap.Open {
			assert.False(t, snap.Closed[c], "%v both open and closed", c)
		}
	}

	final := snaps[len(snaps)-1]
	again, err := stepper.Step()
	require.NoError(t, err)
	assert.Equal(t, final, again)
}

func TestStepperSnapshotsAreCopies(t *testing.T) {
	finder := mustFinder(t, 3, 3)
	stepper, err := finder.NewStepper(context.Background(), Coord{0, 0}, Coord{2, 2})
	require.NoError(t, err)
	defer stepper.Close()

	snap, err := stepper.Step()
	require.NoError(t, err)
	snap.Open[Coord{9, 9}] = true
	delete(snap.Closed, Coord{0, 0})

	next, err := stepper.Step()
	require.NoError(t, err)
	assert.False(t, next.Open[Coord{9, 9}])
	assert.True(t, next.Closed[Coord{0, 0}])
}

func TestStepperSameCell(t *testing.T) {
	finder := mustFinder(t, 6, 6)
	stepper, err := finder.NewStepper(context.Background(), Coord{2, 2}, Coord{2, 2})
	require.NoError(t, err)
	defer stepper.Close()

	snap, err := stepper.Step()
	require.NoError(t, err)
	assert.True(t, snap.Done)
	assert.True(t, snap.Found)
	assert.NotNil(t, snap.Path)
	assert.Empty(t, snap.Path)
}

func TestStepperInvalidCoordinate(t *testing.T) {
	finder := mustFinder(t, 6, 6)
	_, err := finder.NewStepper(context.Background(), Coord{0, 0}, Coord{6, 0})
	assert.ErrorIs(t, err, ErrInvalidCoordinate)
	_, err = finder.NewStepper(context.Background(), Coord{0, 6}, Coord{0, 0})
	assert.ErrorIs(t, err, ErrInvalidCoordinate)
}

func TestStepperCanceled(t *testing.T) {
	finder := mustFinder(t, 6, 6)
	ctx, cancel := context.WithCancel(context.Background())
	stepper, err := finder.NewStepper(ctx, Coord{0, 0}, Coord{5, 5}, WithWorkers(2))
	require.NoError(t, err)
	defer stepper.Close()

	_, err = stepper.Step()
	require.NoError(t, err)
	cancel()
	snap, err := stepper.Step()
	assert.ErrorIs(t, err, context.Canceled)
	assert.True(t, snap.Done)
}

func TestStepperReleasesWorkersWhenDone(t *testing.T) {
	finder := mustFinder(t, 5, 5)
	stepper, err := finder.NewStepper(context.Background(), Coord{0, 0}, Coord{4, 4}, WithWorkers(4))
	require.NoError(t, err)

	snaps := runStepper(t, stepper)
	assert.ErrorIs(t, stepper.ctx.Err(), context.Canceled)

	again, err := stepper.Step()
	require.NoError(t, err)
	assert.Equal(t, snaps[len(snaps)-1], again)
}
