package worker

import (
	"context"
	"time"

	"github.com/hibiken/asynq"
)

const (
	TaskDiscardSelection = "selection:discard"
)

/*
This file will contain the codes to create tasks and distributes them to the Redis queue.
*/

type TaskDistributor interface {
	DistributeTaskDiscardSelection(ctx context.Context, payload *PayloadDiscardSelection, opts ...asynq.Option) error
	ScheduleSelectionDiscard(ctx context.Context, scope string, storeID string) error
	Close() error
}

type RedisTaskDistributor struct {
	client       *asynq.Client    // client sends tasks to redis queue.
	inspector    *asynq.Inspector // inspector replaces pending tasks that share a task ID.
	discardDelay time.Duration
}

func NewTaskDistributor(redisOpt asynq.RedisClientOpt, discardDelay time.Duration) TaskDistributor {
	return &RedisTaskDistributor{
		client:       asynq.NewClient(redisOpt),
		inspector:    asynq.NewInspector(redisOpt),
		discardDelay: discardDelay,
	}
}

func (distributor *RedisTaskDistributor) Close() error {
	if err := distributor.inspector.Close(); err != nil {
		return err
	}
	return distributor.client.Close()
}
