package worker

import (
	"github.com/hibiken/asynq"
)

const (
	CriticalQueue = "critical"
	DefaultQueue  = "default"
)

type RedisTaskDistributor struct {
	client *asynq.Client
}

func NewRedisTaskDistributor(opt asynq.RedisClientOpt) *RedisTaskDistributor {
	return &RedisTaskDistributor{client: asynq.NewClient(opt)}
}

func (d *RedisTaskDistributor) Close() error {
	return d.client.Close()
}
