package services

import (
	"encoding/json"
	"log"
	"os"

	"github.com/hibiken/asynq"
	"github.com/robfig/cron/v3"
)

// Task Types
const (
	TaskTypeConversionSync = "conversion:sync"
	TaskTypePayoutProcess  = "payout:process"
)

type ConversionSyncPayload struct {
	Page   int    `json:"page"`
	Limit  int    `json:"limit"`
	Status string `json:"status"`
}

// SyncScheduler enqueues the conversion sync task on a cron schedule so the
// local store keeps pace with the tracking API between admin-triggered runs.
type SyncScheduler struct {
	Client *asynq.Client
}

func NewSyncScheduler(client *asynq.Client) *SyncScheduler {
	return &SyncScheduler{Client: client}
}

// EnqueueSync queues one conversion sync run.
func (s *SyncScheduler) EnqueueSync(payload ConversionSyncPayload) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	_, err = s.Client.Enqueue(asynq.NewTask(TaskTypeConversionSync, data))
	return err
}

// StartScheduler initializes the cron job. The schedule comes from
// CONVERSION_SYNC_CRON and defaults to hourly.
func (s *SyncScheduler) StartScheduler() {
	spec := os.Getenv("CONVERSION_SYNC_CRON")
	if spec == "" {
		spec = "0 * * * *"
	}

	c := cron.New()
	_, err := c.AddFunc(spec, func() {
		log.Println("Running scheduled conversion sync...")
		if err := s.EnqueueSync(ConversionSyncPayload{Page: 1, Limit: 100}); err != nil {
			log.Printf("Error enqueueing conversion sync: %v", err)
		}
	})
	if err != nil {
		log.Printf("Error scheduling conversion sync: %v", err)
		return
	}
	c.Start()
	log.Printf("Conversion Sync Scheduler started (%s)", spec)
}
