package testutil

import (
	"context"
	"sync"

	"github.com/aws/aws-sdk-go-v2/service/sqs"
)

// FakeSQS records every SendMessage input.
type FakeSQS struct {
	Err error

	mu   sync.Mutex
	Sent []*sqs.SendMessageInput
}

func (f *FakeSQS) SendMessage(ctx context.Context, params *sqs.SendMessageInput, optFns ...func(*sqs.Options)) (*sqs.SendMessageOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Err != nil {
		return nil, f.Err
	}
	f.Sent = append(f.Sent, params)
	id := "msg-1"
	return &sqs.SendMessageOutput{MessageId: &id}, nil
}

// Messages returns a copy of the recorded inputs.
func (f *FakeSQS) Messages() []*sqs.SendMessageInput {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]*sqs.SendMessageInput(nil), f.Sent...)
}
