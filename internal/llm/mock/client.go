package mock

import (
	"context"
	"time"

	"github.com/ksafonov/brandforge/internal/llm"
)

// Client - мок LLM для тестов. Responses выдаются по очереди; когда очередь
// пуста, возвращается Response.
type Client struct {
	Response  string
	Responses []string
	Error     error
	Delay     time.Duration

	CallCount  int
	LastSystem string
	LastPrompt string
	LastImages []string
	AllCalls   []Call
}

type Call struct {
	System string
	Prompt string
	Images []string
}

func New() *Client {
	return &Client{
		Response: `{"score": 80}`,
	}
}

func (c *Client) WithResponse(response string) *Client {
	c.Response = response
	return c
}

// WithResponses задаёт последовательные ответы для многошаговых сценариев
func (c *Client) WithResponses(responses ...string) *Client {
	c.Responses = responses
	return c
}

func (c *Client) WithError(err error) *Client {
	c.Error = err
	return c
}

func (c *Client) WithDelay(d time.Duration) *Client {
	c.Delay = d
	return c
}

func (c *Client) CompleteWithSystem(ctx context.Context, system, prompt string) (string, error) {
	return c.complete(ctx, system, prompt, nil)
}

func (c *Client) CompleteWithImages(ctx context.Context, system, prompt string, imageURLs []string) (string, error) {
	return c.complete(ctx, system, prompt, imageURLs)
}

func (c *Client) complete(ctx context.Context, system, prompt string, images []string) (string, error) {
	c.CallCount++
	c.LastSystem = system
	c.LastPrompt = prompt
	c.LastImages = images
	c.AllCalls = append(c.AllCalls, Call{System: system, Prompt: prompt, Images: images})

	if c.Delay > 0 {
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(c.Delay):
		}
	}

	if c.Error != nil {
		return "", c.Error
	}

	if len(c.Responses) > 0 {
		resp := c.Responses[0]
		c.Responses = c.Responses[1:]
		return resp, nil
	}
	return c.Response, nil
}

var _ llm.VisionClient = (*Client)(nil)
