package tasks

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

// Task type names
const (
	TypePageRevalidate = "page:revalidate"
	TypeSchedulerTick  = "scheduler:tick"
)

// PageRevalidatePayload lists the cached paths to re-render.
type PageRevalidatePayload struct {
	Paths []string `json:"paths"`
}

func NewPageRevalidateTask(payload PageRevalidatePayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypePageRevalidate, data), nil
}

func NewSchedulerTickTask() *asynq.Task {
	return asynq.NewTask(TypeSchedulerTick, nil)
}
