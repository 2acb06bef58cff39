// Package app wires configuration and AWS clients into the attendance service.
package app

import (
	"log"

	"github.com/imrishuroy/go-attendance-punch/internal/attendance"
	"github.com/imrishuroy/go-attendance-punch/internal/aws"
	"github.com/imrishuroy/go-attendance-punch/internal/config"
)

// NewService builds the attendance service for a binary identified by source.
// Events and metrics are only attached when configured.
func NewService(cfg config.Config, clients *aws.AWSClients, source string) *attendance.Service {
	opts := []attendance.Option{attendance.WithSource(source)}

	if cfg.EventsQueueURL != "" {
		opts = append(opts, attendance.WithEvents(aws.NewPublisher(clients.SQS, cfg.EventsQueueURL)))
	}
	if cfg.MetricsNamespace != "" {
		opts = append(opts, attendance.WithMetrics(aws.NewMetrics(clients.CloudWatch, cfg.MetricsNamespace)))
	}

	store := attendance.NewStore(clients.DynamoDB, cfg.TableName)
	log.Printf("[%s] table=%s events=%t metrics=%t",
		source, store.TableName(), cfg.EventsQueueURL != "", cfg.MetricsNamespace != "")

	return attendance.NewService(store, opts...)
}
