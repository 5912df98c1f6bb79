package health

import "context"

// UpstreamChecker reports an HTTP collaborator through its client's Ping.
type UpstreamChecker struct {
	name   string
	pinger Pinger
}

func NewUpstreamChecker(name string, pinger Pinger) *UpstreamChecker {
	return &UpstreamChecker{name: name, pinger: pinger}
}

func (c *UpstreamChecker) Name() string {
	return c.name
}

func (c *UpstreamChecker) Check(ctx context.Context) Result {
	if err := c.pinger.Ping(ctx); err != nil {
		return Result{Status: StatusDown, Message: err.Error()}
	}
	return Result{Status: StatusUp}
}
