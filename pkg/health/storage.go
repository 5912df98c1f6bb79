package health

import "context"

// Pinger is implemented by every storage backend of the flow state store.
type Pinger interface {
	Ping(ctx context.Context) error
}

// StorageChecker checks that the configured state backend answers.
type StorageChecker struct {
	name   string
	pinger Pinger
}

// NewStorageChecker creates a checker reported under the given backend name.
func NewStorageChecker(name string, pinger Pinger) *StorageChecker {
	return &StorageChecker{name: "storage:" + name, pinger: pinger}
}

func (c *StorageChecker) Name() string {
	return c.name
}

func (c *StorageChecker) Check(ctx context.Context) Result {
	if err := c.pinger.Ping(ctx); err != nil {
		return Result{Status: StatusDown, Message: err.Error()}
	}
	return Result{Status: StatusUp}
}
