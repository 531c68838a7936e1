package worker

import (
	"context"

	"github.com/hibiken/asynq"
	"github.com/xyz-asif/awaaz-admin/internal/features/notifications"
	"go.uber.org/zap"
)

// Deliverer performs the actual e-mail/push send for a task
type Deliverer interface {
	Deliver(ctx context.Context, d notifications.Delivery) error
}

type RedisTaskProcessor struct {
	server    *asynq.Server
	deliverer Deliverer
	log       *zap.Logger
}

func NewRedisTaskProcessor(opt asynq.RedisClientOpt, deliverer Deliverer, log *zap.Logger) *RedisTaskProcessor {
	server := asynq.NewServer(opt, asynq.Config{
		Queues: map[string]int{
			CriticalQueue: 10,
			DefaultQueue:  5,
		},
		ErrorHandler: asynq.ErrorHandlerFunc(func(ctx context.Context, task *asynq.Task, err error) {
			log.Error("process task failed",
				zap.String("type", task.Type()),
				zap.ByteString("payload", task.Payload()),
				zap.Error(err),
			)
		}),
		Logger: log.Sugar(),
	})

	return &RedisTaskProcessor{
		server:    server,
		deliverer: deliverer,
		log:       log,
	}
}

func (p *RedisTaskProcessor) Mux() *asynq.ServeMux {
	mux := asynq.NewServeMux()
	mux.HandleFunc(TaskDeliverNotification, p.ProcessDeliverNotification)
	return mux
}

// Start runs the processor in the background
func (p *RedisTaskProcessor) Start() error {
	return p.server.Start(p.Mux())
}

// Run blocks until SIGTERM/SIGINT
func (p *RedisTaskProcessor) Run() error {
	return p.server.Run(p.Mux())
}

func (p *RedisTaskProcessor) Shutdown() {
	p.server.Shutdown()
}
