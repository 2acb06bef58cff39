package main

import (
	"context"
	"log"

	"github.com/aws/aws-lambda-go/events"
	validatorv10 "github.com/go-playground/validator/v10"

	"github.com/imrishuroy/go-attendance-punch/internal/attendance"
	"github.com/imrishuroy/go-attendance-punch/internal/aws"
	"github.com/imrishuroy/go-attendance-punch/internal/validation"
)

// Processor ingests punches delivered through SQS.
type Processor struct {
	svc *attendance.Service
	v   *validatorv10.Validate
}

// NewProcessor creates a new worker processor around the attendance service.
func NewProcessor(svc *attendance.Service) *Processor {
	return &Processor{
		svc: svc,
		v:   validation.New(),
	}
}

// Handle records every message of the batch. Messages whose body is not a
// valid punch are dropped; store failures are returned as batch item failures
// so only those messages are redelivered. Redelivery is safe because a punch
// write is an upsert on (userId, timestamp).
func (p *Processor) Handle(ctx context.Context, ev events.SQSEvent) (events.SQSEventResponse, error) {
	var resp events.SQSEventResponse
	for _, rec := range ev.Records {
		if err := p.processMessage(ctx, rec); err != nil {
			log.Printf("[worker] message=%s failed code=%s: %v", rec.MessageId, aws.ErrorCode(err), err)
			resp.BatchItemFailures = append(resp.BatchItemFailures, events.SQSBatchItemFailure{
				ItemIdentifier: rec.MessageId,
			})
		}
	}
	return resp, nil
}

func (p *Processor) processMessage(ctx context.Context, rec events.SQSMessage) error {
	req, err := validation.Decode([]byte(rec.Body), p.v)
	if err != nil {
		// retrying cannot fix the payload
		log.Printf("[worker] dropping message=%s: %v", rec.MessageId, err)
		return nil
	}

	ctx = attendance.WithCorrelationID(ctx, correlationID(rec))
	punch := req.Punch()
	if err := p.svc.Record(ctx, punch); err != nil {
		return err
	}

	log.Printf("[worker] recorded user=%s ts=%s type=%s", punch.UserID, punch.Timestamp, punch.Type)
	return nil
}

func correlationID(rec events.SQSMessage) string {
	if attr, ok := rec.MessageAttributes["correlation_id"]; ok && attr.StringValue != nil && *attr.StringValue != "" {
		return *attr.StringValue
	}
	return rec.MessageId
}
