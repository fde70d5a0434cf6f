package mock

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/ksafonov/brandforge/internal/synth"
)

// Client - мок генератора изображений. Потокобезопасен: оркестратор
// дергает его из нескольких воркеров.
type Client struct {
	mu sync.Mutex

	Error    error
	Delay    time.Duration
	BaseSeed int64

	CallCount    int64
	LastRequests []synth.Request

	// GenerateFunc, если задана, целиком подменяет поведение
	GenerateFunc func(ctx context.Context, req synth.Request) (*synth.Result, error)
}

func New() *Client {
	return &Client{BaseSeed: 1000}
}

func (c *Client) WithError(err error) *Client {
	c.Error = err
	return c
}

func (c *Client) WithDelay(d time.Duration) *Client {
	c.Delay = d
	return c
}

func (c *Client) Generate(ctx context.Context, req synth.Request) (*synth.Result, error) {
	c.mu.Lock()
	c.CallCount++
	n := c.CallCount
	c.LastRequests = append(c.LastRequests, req)
	fn := c.GenerateFunc
	c.mu.Unlock()

	if fn != nil {
		return fn(ctx, req)
	}

	if c.Delay > 0 {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(c.Delay):
		}
	}

	if c.Error != nil {
		return nil, c.Error
	}

	seed := c.BaseSeed + n
	if req.Seed != nil {
		seed = *req.Seed
	}

	return &synth.Result{
		ImageURL: fmt.Sprintf("https://images.mock/%d.png", n),
		Seed:     seed,
	}, nil
}

func (c *Client) Calls() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.CallCount
}
