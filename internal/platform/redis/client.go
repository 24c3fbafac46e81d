package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/redis/go-redis/v9"
)

var (
	poolHits = promauto.NewCounter(prometheus.CounterOpts{
		Name: "visa_admin_redis_pool_hits_total",
		Help: "Number of times a connection was found in the pool",
	})
	poolMisses = promauto.NewCounter(prometheus.CounterOpts{
		Name: "visa_admin_redis_pool_misses_total",
		Help: "Number of times a connection was not found in the pool",
	})
	poolTimeouts = promauto.NewCounter(prometheus.CounterOpts{
		Name: "visa_admin_redis_pool_timeouts_total",
		Help: "Number of times a connection was not obtained due to timeout",
	})
	poolTotalConns = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "visa_admin_redis_pool_total_conns",
		Help: "Number of total connections in the pool",
	})
	poolIdleConns = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "visa_admin_redis_pool_idle_conns",
		Help: "Number of idle connections in the pool",
	})
)

// Client wraps the go-redis client with health checking and pool metrics.
type Client struct {
	*redis.Client
	lastStats *redis.PoolStats
}

// New connects to url. Returns nil, nil if url is empty.
func New(ctx context.Context, url string) (*Client, error) {
	if url == "" {
		return nil, nil
	}

	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis URL: %w", err)
	}
	opts.DialTimeout = 5 * time.Second
	opts.ReadTimeout = 3 * time.Second
	opts.WriteTimeout = 3 * time.Second

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close() //nolint:errcheck // best-effort cleanup on init failure
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	return &Client{Client: client}, nil
}

// Health checks if the Redis connection is healthy.
func (c *Client) Health(ctx context.Context) error {
	return c.Ping(ctx).Err()
}

// RecordPoolStats pushes the delta since the previous call into Prometheus.
func (c *Client) RecordPoolStats() {
	stats := c.PoolStats()
	poolTotalConns.Set(float64(stats.TotalConns))
	poolIdleConns.Set(float64(stats.IdleConns))

	var prev redis.PoolStats
	if c.lastStats != nil {
		prev = *c.lastStats
	}
	if stats.Hits >= prev.Hits {
		poolHits.Add(float64(stats.Hits - prev.Hits))
	}
	if stats.Misses >= prev.Misses {
		poolMisses.Add(float64(stats.Misses - prev.Misses))
	}
	if stats.Timeouts >= prev.Timeouts {
		poolTimeouts.Add(float64(stats.Timeouts - prev.Timeouts))
	}
	c.lastStats = stats
}

// RunPoolStats records pool statistics every interval until ctx is done.
func (c *Client) RunPoolStats(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			c.RecordPoolStats()
		}
	}
}
