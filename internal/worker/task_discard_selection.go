package worker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/hibiken/asynq"
	"github.com/katatrina/plg-shop/internal/util"
	"github.com/rs/zerolog/log"
)

// PayloadDiscardSelection identifies the store selection that was handed to the payment gateway.
type PayloadDiscardSelection struct {
	Scope   string `json:"scope"`
	StoreID string `json:"storeId"`
}

func discardTaskID(scope string) string {
	return util.ScopeKey(TaskDiscardSelection, scope)
}

func (distributor *RedisTaskDistributor) DistributeTaskDiscardSelection(
	ctx context.Context,
	payload *PayloadDiscardSelection,
	opts ...asynq.Option,
) error {
	jsonPayload, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal task payload: %w", err)
	}

	task := asynq.NewTask(TaskDiscardSelection, jsonPayload, opts...)
	info, err := distributor.client.EnqueueContext(ctx, task)
	if err != nil {
		return fmt.Errorf("failed to enqueue task: %w", err)
	}

	log.Info().Str("type", task.Type()).Bytes("payload", task.Payload()).Str("queue", info.Queue).Int("max_retry", info.MaxRetry).Msg("task enqueued")

	return nil
}

// ScheduleSelectionDiscard enqueues the discard of scope's selection after the configured delay.
// A pending discard of the same scope is replaced.
func (distributor *RedisTaskDistributor) ScheduleSelectionDiscard(ctx context.Context, scope string, storeID string) error {
	payload := &PayloadDiscardSelection{Scope: scope, StoreID: storeID}
	opts := []asynq.Option{
		asynq.TaskID(discardTaskID(scope)),
		asynq.ProcessIn(distributor.discardDelay),
		asynq.MaxRetry(3),
		asynq.Queue(QueueDefault),
	}

	err := distributor.DistributeTaskDiscardSelection(ctx, payload, opts...)
	if !errors.Is(err, asynq.ErrTaskIDConflict) {
		return err
	}

	if err = distributor.inspector.DeleteTask(QueueDefault, discardTaskID(scope)); err != nil && !errors.Is(err, asynq.ErrTaskNotFound) {
		return fmt.Errorf("failed to replace pending discard task: %w", err)
	}

	return distributor.DistributeTaskDiscardSelection(ctx, payload, opts...)
}

func (processor *RedisTaskProcessor) ProcessTaskDiscardSelection(
	ctx context.Context,
	task *asynq.Task,
) error {
	var payload PayloadDiscardSelection
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return fmt.Errorf("failed to unmarshal payload: %v: %w", err, asynq.SkipRetry)
	}

	store, err := processor.channel.Read(ctx, payload.Scope)
	if err != nil {
		return err
	}

	// Người dùng đã chọn cửa hàng khác cho đơn mới; giữ nguyên.
	if store == nil || store.ID != payload.StoreID {
		log.Info().Str("type", task.Type()).Str("scope", payload.Scope).Msg("selection already replaced, nothing to discard")
		return nil
	}

	if err = processor.channel.Clear(ctx, payload.Scope); err != nil {
		return err
	}

	log.Info().Str("type", task.Type()).Bytes("payload", task.Payload()).
		Str("scope", payload.Scope).Msg("task processed")

	return nil
}
