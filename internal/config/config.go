package config

import (
	"fmt"
	"math"
	"os"
	"strconv"
	"sync"

	"github.com/joho/godotenv"
)

// MaxTrajectorySteps bounds the sample count of a single trajectory.
const MaxTrajectorySteps = 10000

// Config holds process settings. The Solver fields may be changed at runtime
// by admin overrides; once the server is running, read them through Solver()
// and change them through UpdateSolver.
type Config struct {
	mu sync.RWMutex

	// Environment
	Environment string

	// Database
	DatabaseURL    string
	MigrateOnStart bool

	// Redis
	RedisURL string

	// Server
	Port        string
	FrontendURL string

	// Ballistics
	Gravity         float64 // m/s²
	TrajectorySteps int

	// Output files
	TrajectoryCSVPath  string
	SolutionFactsPath  string
	TrajectoryPlotPath string

	// Solution service
	SolutionCacheTTLSeconds int
	MaxBatchSize            int

	// Security
	JWTSecret            string
	AdminTokenTTLMinutes int
}

func Load() *Config {
	// Load .env file if it exists
	godotenv.Load()

	return &Config{
		// Environment
		Environment: getEnv("APP_ENV", "development"),

		// Database
		DatabaseURL:    getEnv("DATABASE_URL", ""),
		MigrateOnStart: getEnvBool("MIGRATE_ON_START", false),

		// Redis
		RedisURL: getEnv("REDIS_URL", ""),

		// Server
		Port:        getEnv("APP_PORT", "8080"),
		FrontendURL: getEnv("FRONTEND_URL", "http://localhost:5173"),

		// Ballistics
		Gravity:         getEnvFloat("GRAVITY", 9.76398),
		TrajectorySteps: getEnvInt("TRAJECTORY_STEPS", 200),

		// Output files
		TrajectoryCSVPath:  getEnv("TRAJECTORY_CSV_PATH", "data/trajectory.csv"),
		SolutionFactsPath:  getEnv("SOLUTION_FACTS_PATH", "prolog/solution.pl"),
		TrajectoryPlotPath: getEnv("TRAJECTORY_PLOT_PATH", "data/trajectory.png"),

		// Solution service
		SolutionCacheTTLSeconds: getEnvInt("SOLUTION_CACHE_TTL_SECONDS", 3600),
		MaxBatchSize:            getEnvInt("MAX_BATCH_SIZE", 64),

		// Security
		JWTSecret:            getEnv("JWT_SECRET", "change-me-in-production"),
		AdminTokenTTLMinutes: getEnvInt("ADMIN_TOKEN_TTL_MINUTES", 240),
	}
}

// Solver is a snapshot of the runtime-tunable solver settings.
type Solver struct {
	Gravity                 float64
	TrajectorySteps         int
	SolutionCacheTTLSeconds int
	MaxBatchSize            int
}

// Validate rejects settings the solver cannot work with.
func (s Solver) Validate() error {
	if math.IsNaN(s.Gravity) || math.IsInf(s.Gravity, 0) || s.Gravity <= 0 {
		return fmt.Errorf("GRAVITY must be a positive finite number, got %v", s.Gravity)
	}
	if s.TrajectorySteps < 1 || s.TrajectorySteps > MaxTrajectorySteps {
		return fmt.Errorf("TRAJECTORY_STEPS must be between 1 and %d, got %d", MaxTrajectorySteps, s.TrajectorySteps)
	}
	if s.MaxBatchSize < 1 {
		return fmt.Errorf("MAX_BATCH_SIZE must be at least 1, got %d", s.MaxBatchSize)
	}
	return nil
}

// Solver returns a consistent copy of the solver settings.
func (c *Config) Solver() Solver {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return Solver{
		Gravity:                 c.Gravity,
		TrajectorySteps:         c.TrajectorySteps,
		SolutionCacheTTLSeconds: c.SolutionCacheTTLSeconds,
		MaxBatchSize:            c.MaxBatchSize,
	}
}

// UpdateSolver applies fn to a copy of the solver settings and stores the
// result if it validates. Readers never observe a partial update.
func (c *Config) UpdateSolver(fn func(*Solver)) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	next := Solver{
		Gravity:                 c.Gravity,
		TrajectorySteps:         c.TrajectorySteps,
		SolutionCacheTTLSeconds: c.SolutionCacheTTLSeconds,
		MaxBatchSize:            c.MaxBatchSize,
	}
	fn(&next)
	if err := next.Validate(); err != nil {
		return err
	}

	c.Gravity = next.Gravity
	c.TrajectorySteps = next.TrajectorySteps
	c.SolutionCacheTTLSeconds = next.SolutionCacheTTLSeconds
	c.MaxBatchSize = next.MaxBatchSize
	return nil
}

// Validate rejects settings the solver cannot work with.
func (c *Config) Validate() error {
	return c.Solver().Validate()
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}
