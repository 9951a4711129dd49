package config

import (
	"math"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"GRAVITY", "TRAJECTORY_STEPS", "TRAJECTORY_CSV_PATH", "SOLUTION_FACTS_PATH", "MIGRATE_ON_START"} {
		t.Setenv(key, "")
	}

	cfg := Load()

	assert.InDelta(t, 9.76398, cfg.Gravity, 1e-12)
	assert.Equal(t, 200, cfg.TrajectorySteps)
	assert.Equal(t, "data/trajectory.csv", cfg.TrajectoryCSVPath)
	assert.Equal(t, "prolog/solution.pl", cfg.SolutionFactsPath)
	assert.False(t, cfg.MigrateOnStart)
	require.NoError(t, cfg.Validate())
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("GRAVITY", "9.80665")
	t.Setenv("TRAJECTORY_STEPS", "50")
	t.Setenv("MIGRATE_ON_START", "true")
	t.Setenv("MAX_BATCH_SIZE", "not-a-number")

	cfg := Load()

	assert.InDelta(t, 9.80665, cfg.Gravity, 1e-12)
	assert.Equal(t, 50, cfg.TrajectorySteps)
	assert.True(t, cfg.MigrateOnStart)
	assert.Equal(t, 64, cfg.MaxBatchSize)
}

func TestValidate(t *testing.T) {
	cfg := &Config{Gravity: 9.8, TrajectorySteps: 200, MaxBatchSize: 1}
	require.NoError(t, cfg.Validate())

	cfg.Gravity = 0
	assert.Error(t, cfg.Validate())

	cfg.Gravity = 9.8
	cfg.TrajectorySteps = 0
	assert.Error(t, cfg.Validate())
}

func TestValidateRejectsNonFiniteGravity(t *testing.T) {
	for _, g := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		cfg := &Config{Gravity: g, TrajectorySteps: 200, MaxBatchSize: 1}
		assert.Error(t, cfg.Validate(), "gravity %v", g)
	}

	t.Setenv("GRAVITY", "NaN")
	assert.Error(t, Load().Validate())
}

func TestValidateBoundsTrajectorySteps(t *testing.T) {
	cfg := &Config{Gravity: 9.8, TrajectorySteps: MaxTrajectorySteps, MaxBatchSize: 1}
	require.NoError(t, cfg.Validate())

	cfg.TrajectorySteps = MaxTrajectorySteps + 1
	assert.Error(t, cfg.Validate())
}

func TestUpdateSolver(t *testing.T) {
	cfg := &Config{Gravity: 9.76398, TrajectorySteps: 200, MaxBatchSize: 8}

	require.NoError(t, cfg.UpdateSolver(func(s *Solver) {
		s.Gravity = 9.81
		s.MaxBatchSize = 16
	}))
	got := cfg.Solver()
	assert.Equal(t, 9.81, got.Gravity)
	assert.Equal(t, 16, got.MaxBatchSize)
	assert.Equal(t, 200, got.TrajectorySteps)

	err := cfg.UpdateSolver(func(s *Solver) {
		s.Gravity = 1.62
		s.TrajectorySteps = 0
	})
	assert.Error(t, err)
	assert.Equal(t, got, cfg.Solver(), "a rejected update must leave every field unchanged")
}

func TestUpdateSolverConcurrentReaders(t *testing.T) {
	cfg := &Config{Gravity: 9.76398, TrajectorySteps: 200, MaxBatchSize: 8}

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := 0; i < 500; i++ {
			g := 9.76398
			if i%2 == 0 {
				g = 9.81
			}
			_ = cfg.UpdateSolver(func(s *Solver) { s.Gravity = g })
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < 500; i++ {
			s := cfg.Solver()
			assert.True(t, s.Gravity == 9.76398 || s.Gravity == 9.81)
		}
	}()
	wg.Wait()
}
