package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"offerwall-service/internal/consumers"
	"offerwall-service/internal/services"

	"github.com/hibiken/asynq"
)

type Worker struct {
	Processor *consumers.ConversionProcessor
}

func NewWorker(processor *consumers.ConversionProcessor) *Worker {
	return &Worker{
		Processor: processor,
	}
}

func (w *Worker) HandleConversionSync(ctx context.Context, t *asynq.Task) error {
	var p services.ConversionSyncPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		return fmt.Errorf("json.Unmarshal failed: %v: %w", err, asynq.SkipRetry)
	}
	w.Processor.ProcessSync(p)
	return nil
}

func (w *Worker) HandlePayoutProcess(ctx context.Context, t *asynq.Task) error {
	w.Processor.ProcessPayouts()
	return nil
}

func StartWorker(redisOpt asynq.RedisClientOpt, processor *consumers.ConversionProcessor) {
	srv := asynq.NewServer(
		redisOpt,
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"critical": 6,
				"default":  3,
				"low":      1,
			},
		},
	)

	worker := NewWorker(processor)
	mux := asynq.NewServeMux()

	mux.HandleFunc(services.TaskTypeConversionSync, worker.HandleConversionSync)
	mux.HandleFunc(services.TaskTypePayoutProcess, worker.HandlePayoutProcess)

	if err := srv.Run(mux); err != nil {
		log.Fatalf("could not run server: %v", err)
	}
}
