package main

import (
	"context"
	"log"
	"os"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"

	"github.com/imrishuroy/go-attendance-punch/internal/app"
	"github.com/imrishuroy/go-attendance-punch/internal/aws"
	"github.com/imrishuroy/go-attendance-punch/internal/config"
)

func main() {
	cfg := config.Load()

	clients, err := aws.NewAWSClients(context.Background())
	if err != nil {
		log.Fatalf("failed to init aws clients: %v", err)
	}

	p := NewProcessor(app.NewService(cfg, clients, "worker"))

	// If RUN_LOCAL=true, simulate a single SQS event for local testing.
	if cfg.RunLocal {
		testBody := os.Getenv("LOCAL_SQS_BODY")
		if testBody == "" {
			testBody = `{"userId":"local-user-1","timestamp":"2024-01-01T09:00:00Z","type":"clock-in"}`
		}
		event := events.SQSEvent{
			Records: []events.SQSMessage{
				{MessageId: "local-1", Body: testBody},
			},
		}
		resp, err := p.Handle(context.Background(), event)
		if err != nil {
			log.Fatalf("local handler error: %v", err)
		}
		log.Printf("[worker] local run done, failures=%d", len(resp.BatchItemFailures))
		return
	}

	lambda.Start(p.Handle)
}
