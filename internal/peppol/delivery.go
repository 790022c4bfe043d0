package peppol

import (
	"context"
	"encoding/json"
	"time"

	"app/internal/model"
	"app/internal/pgmq"
	"app/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// DeliveryQueue is the pgmq queue holding pending document deliveries.
const DeliveryQueue = "peppol_delivery"

// DeliveryJob asks the worker to deliver one rendered invoice document to
// the Peppol network.
type DeliveryJob struct {
	InvoiceID   string `json:"invoice_id"`
	UserID      string `json:"user_id"`
	DocumentURL string `json:"document_url"`
}

// QueueSender enqueues delivery jobs. Satisfied by *pgmq.Client.
type QueueSender interface {
	Send(ctx context.Context, queue string, payload []byte) error
}

// EnqueueDelivery pushes a delivery job for the invoice onto the queue.
func EnqueueDelivery(ctx context.Context, q QueueSender, job DeliveryJob) error {
	payload, err := json.Marshal(job)
	if err != nil {
		return err
	}
	return q.Send(ctx, DeliveryQueue, payload)
}

// AccessPoint transmits a UBL document to the Peppol network and returns
// the network message id.
type AccessPoint interface {
	Deliver(ctx context.Context, job DeliveryJob) (string, error)
}

// loopbackAccessPoint acknowledges deliveries locally. It stands in until
// a real access point connection is configured.
type loopbackAccessPoint struct{}

func NewLoopbackAccessPoint() AccessPoint {
	return loopbackAccessPoint{}
}

func (loopbackAccessPoint) Deliver(ctx context.Context, job DeliveryJob) (string, error) {
	return "urn:peppol:msg:" + uuid.NewString(), nil
}

// RunWorker polls the delivery queue and pushes documents to the access
// point, recording the outcome on the invoice. It returns when ctx is
// cancelled.
func RunWorker(ctx context.Context, logger zerolog.Logger, queue *pgmq.Client, ap AccessPoint, invoiceRepo repository.InvoiceRepository) error {
	log := logger.With().Str("worker", "peppol-delivery").Logger()
	log.Info().Msg("Peppol delivery worker started")

	for {
		select {
		case <-ctx.Done():
			log.Info().Msg("Peppol delivery worker stopping")
			return nil
		default:
		}

		msgs, err := queue.ReadWithPoll(ctx, DeliveryQueue, 5, 10)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			log.Error().Err(err).Msg("Failed to read delivery queue")
			time.Sleep(time.Second)
			continue
		}

		for _, msg := range msgs {
			var job DeliveryJob
			if err := json.Unmarshal(msg.Data, &job); err != nil {
				log.Error().Err(err).Int64("msg_id", msg.ID).Msg("Dropping malformed delivery job")
				if err := queue.Delete(ctx, DeliveryQueue, []int64{msg.ID}); err != nil {
					log.Error().Err(err).Int64("msg_id", msg.ID).Msg("Failed to delete malformed job")
				}
				continue
			}

			messageID, err := ap.Deliver(ctx, job)
			if err != nil {
				// Leave the message in the queue; pgmq redelivers after
				// the visibility timeout.
				log.Error().Err(err).Str("invoice_id", job.InvoiceID).Msg("Delivery failed, will retry")
				if err := invoiceRepo.SetPeppolStatus(ctx, job.InvoiceID, model.PeppolFailed, ""); err != nil {
					log.Error().Err(err).Str("invoice_id", job.InvoiceID).Msg("Failed to record delivery failure")
				}
				continue
			}

			if err := invoiceRepo.SetPeppolStatus(ctx, job.InvoiceID, model.PeppolDelivered, messageID); err != nil {
				log.Error().Err(err).Str("invoice_id", job.InvoiceID).Msg("Failed to record delivery")
				continue
			}
			if err := queue.Delete(ctx, DeliveryQueue, []int64{msg.ID}); err != nil {
				log.Error().Err(err).Int64("msg_id", msg.ID).Msg("Failed to delete processed job")
			}
			log.Info().Str("invoice_id", job.InvoiceID).Str("peppol_message_id", messageID).Msg("Invoice delivered")
		}
	}
}
