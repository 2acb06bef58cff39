package testutil

import (
	"context"
	"sync"

	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"
)

// FakeCloudWatch records every PutMetricData input.
type FakeCloudWatch struct {
	Err error

	mu   sync.Mutex
	Puts []*cloudwatch.PutMetricDataInput
}

func (f *FakeCloudWatch) PutMetricData(ctx context.Context, params *cloudwatch.PutMetricDataInput, optFns ...func(*cloudwatch.Options)) (*cloudwatch.PutMetricDataOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Err != nil {
		return nil, f.Err
	}
	f.Puts = append(f.Puts, params)
	return &cloudwatch.PutMetricDataOutput{}, nil
}

// MetricNames lists the metric names put so far, in order.
func (f *FakeCloudWatch) MetricNames() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	var names []string
	for _, p := range f.Puts {
		for _, d := range p.MetricData {
			if d.MetricName != nil {
				names = append(names, *d.MetricName)
			}
		}
	}
	return names
}
