package consumers

import (
	"log"

	"offerwall-service/internal/services"

	"github.com/hibiken/asynq"
)

// ConversionProcessor runs the background side of conversion ingestion:
// pull from the tracking API, reconcile against leads, queue payout work.
type ConversionProcessor struct {
	Hiqmobi *services.HiqmobiService
	Payouts *services.PayoutService
	Client  *asynq.Client
}

func NewConversionProcessor(hiqmobi *services.HiqmobiService, payouts *services.PayoutService, client *asynq.Client) *ConversionProcessor {
	return &ConversionProcessor{
		Hiqmobi: hiqmobi,
		Payouts: payouts,
		Client:  client,
	}
}

// ProcessSync ingests one page of conversions and reconciles completed ones
// against local users. Overlapping runs are safe: ingestion upserts are
// idempotent per click id.
func (p *ConversionProcessor) ProcessSync(payload services.ConversionSyncPayload) {
	records, err := p.Hiqmobi.FetchConversions(payload.Page, payload.Limit, payload.Status, "", "")
	if err != nil {
		log.Printf("conversion sync: fetch failed: %v", err)
		return
	}
	log.Printf("conversion sync: ingested %d records", len(records))

	matched, err := p.Hiqmobi.Reconcile(p.Payouts)
	if err != nil {
		log.Printf("conversion sync: reconcile failed: %v", err)
		return
	}
	log.Printf("conversion sync: reconciled %d conversions", matched)

	if matched > 0 && p.Client != nil {
		task := asynq.NewTask(services.TaskTypePayoutProcess, nil)
		if _, err := p.Client.Enqueue(task); err != nil {
			log.Printf("conversion sync: failed to enqueue payout run: %v", err)
		}
	}
}

// ProcessPayouts advances pending automatic payouts.
func (p *ConversionProcessor) ProcessPayouts() {
	processed, err := p.Payouts.ProcessAutomatic()
	if err != nil {
		log.Printf("payout run: %v", err)
		return
	}
	log.Printf("payout run: moved %d payouts to processing", processed)
}
