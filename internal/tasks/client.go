package tasks

import (
	"fmt"

	"github.com/hibiken/asynq"
)

// Client enqueues background tasks for the worker.
type Client struct {
	asynq *asynq.Client
}

func NewClient(client *asynq.Client) *Client {
	return &Client{asynq: client}
}

// EnqueueRevalidate queues a re-render of the given cached paths.
func (c *Client) EnqueueRevalidate(paths ...string) error {
	task, err := NewPageRevalidateTask(PageRevalidatePayload{Paths: paths})
	if err != nil {
		return fmt.Errorf("building revalidate task: %w", err)
	}
	if _, err := c.asynq.Enqueue(task, asynq.Queue("default")); err != nil {
		return fmt.Errorf("enqueueing revalidate task: %w", err)
	}
	return nil
}

// EnqueueSchedulerTick queues the periodic home page refresh.
func (c *Client) EnqueueSchedulerTick() error {
	if _, err := c.asynq.Enqueue(NewSchedulerTickTask(), asynq.Queue("low")); err != nil {
		return fmt.Errorf("enqueueing scheduler tick: %w", err)
	}
	return nil
}
