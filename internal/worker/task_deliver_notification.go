package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/hibiken/asynq"
	"github.com/xyz-asif/awaaz-admin/internal/features/notifications"
	"github.com/xyz-asif/awaaz-admin/internal/pkg/logger"
	"go.uber.org/zap"
)

const TaskDeliverNotification = "notification:deliver"

// NewDeliverNotificationTask wraps a delivery into an asynq task
func NewDeliverNotificationTask(d notifications.Delivery, opts ...asynq.Option) (*asynq.Task, error) {
	payload, err := json.Marshal(d)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal delivery payload: %w", err)
	}
	return asynq.NewTask(TaskDeliverNotification, payload, opts...), nil
}

// Dispatch enqueues d, satisfying notifications.Dispatcher
func (d *RedisTaskDistributor) Dispatch(ctx context.Context, del notifications.Delivery) error {
	task, err := NewDeliverNotificationTask(del,
		asynq.MaxRetry(5),
		asynq.Timeout(time.Minute),
		asynq.Queue(DefaultQueue),
	)
	if err != nil {
		return err
	}

	info, err := d.client.EnqueueContext(ctx, task)
	if err != nil {
		return fmt.Errorf("failed to enqueue task: %w", err)
	}

	logger.Debug("enqueued notification delivery",
		zap.String("taskId", info.ID),
		zap.String("queue", info.Queue),
		zap.Int("maxRetry", info.MaxRetry),
	)
	return nil
}

func (p *RedisTaskProcessor) ProcessDeliverNotification(ctx context.Context, task *asynq.Task) error {
	var del notifications.Delivery
	if err := json.Unmarshal(task.Payload(), &del); err != nil {
		return fmt.Errorf("failed to unmarshal payload: %w", asynq.SkipRetry)
	}

	if err := p.deliverer.Deliver(ctx, del); err != nil {
		return fmt.Errorf("deliver notification %s: %w", del.NotificationID, err)
	}

	p.log.Info("notification delivered", zap.String("notificationId", del.NotificationID))
	return nil
}
