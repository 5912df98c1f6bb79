package health

import (
	"context"
	"time"
)

const DefaultTimeout = 5 * time.Second

type Status string

const (
	StatusUp Status = "up"
	// StatusDegraded means only optional collaborators are down. The flow still
	// serves requests and reports the failing step to the shopper.
	StatusDegraded Status = "degraded"
	StatusDown     Status = "down"
)

type Result struct {
	Status  Status `json:"status"`
	Message string `json:"message,omitempty"`
}

type Checker interface {
	Name() string
	Check(ctx context.Context) Result
}

type optional struct {
	Checker
}

// Optional wraps a checker whose failure degrades readiness instead of failing it.
func Optional(c Checker) Checker {
	return optional{Checker: c}
}

func isOptional(c Checker) bool {
	_, ok := c.(optional)
	return ok
}
