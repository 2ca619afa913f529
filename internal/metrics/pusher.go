package metrics

import (
	"context"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/push"
)

// Pusher sends the gathered metrics to a Pushgateway. Function instances are
// never scraped, so each instance pushes its own cumulative series under its
// instance grouping label.
type Pusher struct {
	pusher *push.Pusher
}

// NewPusher targets the gateway at url. url must not include the /metrics/job path.
func NewPusher(url, job, instance string, g prometheus.Gatherer) *Pusher {
	return &Pusher{
		pusher: push.New(url, job).Gatherer(g).Grouping("instance", instance),
	}
}

// Push replaces this instance's series on the gateway.
func (p *Pusher) Push(ctx context.Context) error {
	if err := p.pusher.PushContext(ctx); err != nil {
		return fmt.Errorf("failed to push metrics: %w", err)
	}
	return nil
}
