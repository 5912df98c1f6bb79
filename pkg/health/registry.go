package health

import (
	"context"
	"sync"
)

type Registry struct {
	checkers []Checker
}

func NewRegistry(checkers ...Checker) *Registry {
	return &Registry{checkers: checkers}
}

type CheckResult struct {
	Name     string `json:"name"`
	Status   Status `json:"status"`
	Optional bool   `json:"optional,omitempty"`
	Message  string `json:"message,omitempty"`
}

type ReadinessResponse struct {
	Status Status        `json:"status"`
	Checks []CheckResult `json:"checks,omitempty"`
}

// CheckAll runs every checker concurrently. A failing required checker makes
// the whole service down, a failing optional one only degrades it.
func (r *Registry) CheckAll(ctx context.Context) ReadinessResponse {
	results := make([]CheckResult, len(r.checkers))

	var wg sync.WaitGroup
	for i, c := range r.checkers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			res := c.Check(ctx)
			results[i] = CheckResult{
				Name:     c.Name(),
				Status:   res.Status,
				Optional: isOptional(c),
				Message:  res.Message,
			}
		}()
	}
	wg.Wait()

	return ReadinessResponse{Status: overall(results), Checks: results}
}

func overall(results []CheckResult) Status {
	status := StatusUp
	for _, res := range results {
		if res.Status != StatusDown {
			continue
		}
		if !res.Optional {
			return StatusDown
		}
		status = StatusDegraded
	}
	return status
}
