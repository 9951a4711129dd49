// Package solutions turns firing requests into solved, sampled results. It wraps the pure
// ballistics core with catalog lookup, caching, history and event publishing.
package solutions

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math"
	"sync"
	"time"

	"github.com/rangecard/backend/internal/ballistics"
	"github.com/rangecard/backend/internal/cartridges"
	"github.com/rangecard/backend/internal/config"
	"github.com/rangecard/backend/internal/models"
	"github.com/rangecard/backend/internal/report"
)

const (
	BranchLow  = "low"
	BranchHigh = "high"

	// MaxSteps bounds the sample count a single request may ask for.
	MaxSteps = config.MaxTrajectorySteps

	customCaliber = "custom"
)

var ErrInvalidRequest = errors.New("invalid request")

// Request describes one firing problem. Either CartridgeID or MuzzleVelocity must be set;
// the cartridge wins when both are.
type Request struct {
	CartridgeID    string  `json:"cartridge_id,omitempty"`
	MuzzleVelocity float64 `json:"muzzle_velocity,omitempty"`
	Range          float64 `json:"range"`
	Steps          int     `json:"steps,omitempty"`
	Branch         string  `json:"branch,omitempty"`
	OmitTrajectory bool    `json:"omit_trajectory,omitempty"`
}

// Result is a solved request. Trajectory is empty when there is no solution.
type Result struct {
	Cartridge      *models.Cartridge   `json:"cartridge,omitempty"`
	MuzzleVelocity float64             `json:"muzzle_velocity"`
	Range          float64             `json:"range"`
	Gravity        float64             `json:"gravity"`
	Branch         string              `json:"branch"`
	Steps          int                 `json:"steps"`
	Solution       ballistics.Solution `json:"solution"`
	TimeOfFlight   float64             `json:"time_of_flight,omitempty"`
	Apex           *ballistics.Point   `json:"apex,omitempty"`
	ImpactSpeed    float64             `json:"impact_speed,omitempty"`
	ImpactAngle    float64             `json:"impact_angle,omitempty"`
	Trajectory     []ballistics.Point  `json:"trajectory,omitempty"`
	Cached         bool                `json:"cached"`
}

// Caliber returns the label used in fact records.
func (r *Result) Caliber() string {
	if r.Cartridge != nil {
		return r.Cartridge.Caliber
	}
	return customCaliber
}

// Fact builds the Prolog fact record for the result.
func (r *Result) Fact() report.Fact {
	return report.Fact{
		Caliber:        r.Caliber(),
		MuzzleVelocity: r.MuzzleVelocity,
		Range:          r.Range,
		Solution:       r.Solution,
	}
}

// BatchItem is one entry of a batch response; exactly one of Result and Error is set.
type BatchItem struct {
	Result *Result `json:"result,omitempty"`
	Error  string  `json:"error,omitempty"`
}

// Service solves requests against a catalog and the configured gravity.
type Service struct {
	cfg       *config.Config
	catalog   cartridges.Store
	cache     Cache
	history   History
	publisher Publisher
}

func NewService(cfg *config.Config, catalog cartridges.Store) *Service {
	return &Service{cfg: cfg, catalog: catalog}
}

func (s *Service) WithCache(c Cache) *Service {
	s.cache = c
	return s
}

func (s *Service) WithHistory(h History) *Service {
	s.history = h
	return s
}

func (s *Service) WithPublisher(p Publisher) *Service {
	s.publisher = p
	return s
}

// Catalog exposes the cartridge store the service resolves against.
func (s *Service) Catalog() cartridges.Store {
	return s.catalog
}

// Gravity returns the gravitational acceleration requests are solved with.
func (s *Service) Gravity() float64 {
	return s.cfg.Solver().Gravity
}

// Solve resolves, solves and samples a request. A target out of reach is a normal
// Result with no solution; errors are reserved for bad requests and catalog failures.
func (s *Service) Solve(ctx context.Context, req Request) (*Result, error) {
	settings := s.cfg.Solver()
	res, err := s.prepare(ctx, req, settings)
	if err != nil {
		return nil, err
	}

	key := cacheKey(res)
	if s.cache != nil {
		cached, ok, err := s.cache.Get(ctx, key)
		if err != nil {
			log.Printf("[CACHE] lookup %s failed: %v", key, err)
		} else if ok {
			cached.Cartridge = res.Cartridge
			cached.Cached = true
			return trim(cached, req.OmitTrajectory), nil
		}
	}

	compute(res)

	if s.cache != nil {
		ttl := time.Duration(settings.SolutionCacheTTLSeconds) * time.Second
		if err := s.cache.Set(ctx, key, res, ttl); err != nil {
			log.Printf("[CACHE] store %s failed: %v", key, err)
		}
	}
	s.record(ctx, res)

	return trim(res, req.OmitTrajectory), nil
}

// SolveBatch solves every request concurrently. Items come back in request order.
func (s *Service) SolveBatch(ctx context.Context, reqs []Request) ([]BatchItem, error) {
	if len(reqs) == 0 {
		return nil, fmt.Errorf("%w: empty batch", ErrInvalidRequest)
	}
	if limit := s.cfg.Solver().MaxBatchSize; len(reqs) > limit {
		return nil, fmt.Errorf("%w: batch of %d exceeds limit %d", ErrInvalidRequest, len(reqs), limit)
	}

	items := make([]BatchItem, len(reqs))
	var wg sync.WaitGroup
	for i, req := range reqs {
		wg.Add(1)
		go func(i int, req Request) {
			defer wg.Done()
			res, err := s.Solve(ctx, req)
			if err != nil {
				items[i].Error = err.Error()
				return
			}
			items[i].Result = res
		}(i, req)
	}
	wg.Wait()
	return items, nil
}

// prepare validates the request and fills in everything but the solution.
func (s *Service) prepare(ctx context.Context, req Request, settings config.Solver) (*Result, error) {
	if math.IsNaN(req.Range) || math.IsInf(req.Range, 0) || req.Range <= 0 {
		return nil, fmt.Errorf("%w: range must be positive", ErrInvalidRequest)
	}

	steps := req.Steps
	if steps == 0 {
		steps = settings.TrajectorySteps
	}
	if steps < 1 || steps > MaxSteps {
		return nil, fmt.Errorf("%w: steps must be between 1 and %d", ErrInvalidRequest, MaxSteps)
	}

	branch := req.Branch
	if branch == "" {
		branch = BranchLow
	}
	if branch != BranchLow && branch != BranchHigh {
		return nil, fmt.Errorf("%w: unknown branch %q", ErrInvalidRequest, req.Branch)
	}

	res := &Result{
		Range:   req.Range,
		Gravity: settings.Gravity,
		Branch:  branch,
		Steps:   steps,
	}

	switch {
	case req.CartridgeID != "":
		c, err := s.catalog.Get(ctx, req.CartridgeID)
		if err != nil {
			return nil, fmt.Errorf("cartridge %s: %w", req.CartridgeID, err)
		}
		res.Cartridge = c
		res.MuzzleVelocity = c.MuzzleVelocity
	case req.MuzzleVelocity > 0 && !math.IsInf(req.MuzzleVelocity, 0):
		res.MuzzleVelocity = req.MuzzleVelocity
	default:
		return nil, fmt.Errorf("%w: cartridge_id or a positive muzzle_velocity is required", ErrInvalidRequest)
	}

	return res, nil
}

func compute(res *Result) {
	if res.Branch == BranchHigh {
		res.Solution = ballistics.SolveHighAngle(res.MuzzleVelocity, res.Range, res.Gravity)
	} else {
		res.Solution = ballistics.SolveLowAngle(res.MuzzleVelocity, res.Range, res.Gravity)
	}

	angle, ok := res.Solution.Angle()
	if !ok {
		return
	}
	res.TimeOfFlight = ballistics.TimeOfFlight(res.MuzzleVelocity, angle, res.Gravity)
	apex := ballistics.Apex(res.MuzzleVelocity, angle, res.Gravity)
	res.Apex = &apex
	impact := ballistics.Impact(res.MuzzleVelocity, angle)
	res.ImpactSpeed = impact.Magnitude()
	res.ImpactAngle = -impact.Elevation()
	res.Trajectory = ballistics.CalculateTrajectory(res.MuzzleVelocity, angle, res.Gravity, res.Steps)
}

func (s *Service) record(ctx context.Context, res *Result) {
	if s.history != nil {
		if err := s.history.Record(ctx, res); err != nil {
			log.Printf("[SOLVE] failed to record history: %v", err)
		}
	}
	if s.publisher != nil {
		if err := s.publisher.Publish(ctx, NewEvent(res)); err != nil {
			log.Printf("[SOLVE] failed to publish event: %v", err)
		}
	}
}

func trim(res *Result, omitTrajectory bool) *Result {
	if !omitTrajectory || res.Trajectory == nil {
		return res
	}
	out := *res
	out.Trajectory = nil
	return &out
}

func cacheKey(res *Result) string {
	return fmt.Sprintf("solution:%s:%g:%g:%g:%d", res.Branch, res.MuzzleVelocity, res.Range, res.Gravity, res.Steps)
}
