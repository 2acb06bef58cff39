// Package testutil holds in-memory fakes of the AWS clients used in package tests.
package testutil

import (
	"context"
	"errors"
	"sort"
	"sync"

	dyn "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// FakeDynamo is a minimal in-memory table store supporting PutItem and Query
// on a partition key + sort key schema, both of type S.
// It stores items per table in a nested map: table -> partition -> sort -> item.
type FakeDynamo struct {
	PartitionKey string
	SortKey      string
	// PageSize caps the items returned by one Query call, simulating the
	// 1 MB page limit. Zero means unlimited.
	PageSize int

	PutErr   error
	QueryErr error

	mu         sync.Mutex
	tables     map[string]map[string]map[string]map[string]types.AttributeValue
	PutCalls   int
	QueryCalls int
}

// NewFakeDynamo returns a fake keyed by userId/timestamp.
func NewFakeDynamo() *FakeDynamo {
	return &FakeDynamo{
		PartitionKey: "userId",
		SortKey:      "timestamp",
		tables:       map[string]map[string]map[string]map[string]types.AttributeValue{},
	}
}

func (m *FakeDynamo) ensurePartition(table, pk string) map[string]map[string]types.AttributeValue {
	if _, ok := m.tables[table]; !ok {
		m.tables[table] = map[string]map[string]map[string]types.AttributeValue{}
	}
	if _, ok := m.tables[table][pk]; !ok {
		m.tables[table][pk] = map[string]map[string]types.AttributeValue{}
	}
	return m.tables[table][pk]
}

func stringAttr(item map[string]types.AttributeValue, name string) (string, bool) {
	v, ok := item[name].(*types.AttributeValueMemberS)
	if !ok {
		return "", false
	}
	return v.Value, true
}

// PutItem overwrites any existing item with the same key pair.
func (m *FakeDynamo) PutItem(ctx context.Context, params *dyn.PutItemInput, optFns ...func(*dyn.Options)) (*dyn.PutItemOutput, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.PutCalls++
	if m.PutErr != nil {
		return nil, m.PutErr
	}
	if params.TableName == nil {
		return nil, errors.New("missing table name")
	}
	pk, ok := stringAttr(params.Item, m.PartitionKey)
	if !ok {
		return nil, errors.New("missing partition key in put item")
	}
	sk, ok := stringAttr(params.Item, m.SortKey)
	if !ok {
		return nil, errors.New("missing sort key in put item")
	}
	m.ensurePartition(*params.TableName, pk)[sk] = params.Item
	return &dyn.PutItemOutput{}, nil
}

// Query returns the items of one partition in ascending sort key order.
// The partition value is taken from the single expression attribute value.
func (m *FakeDynamo) Query(ctx context.Context, params *dyn.QueryInput, optFns ...func(*dyn.Options)) (*dyn.QueryOutput, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.QueryCalls++
	if m.QueryErr != nil {
		return nil, m.QueryErr
	}
	if params.TableName == nil || params.KeyConditionExpression == nil {
		return nil, errors.New("missing table name or key condition")
	}
	if len(params.ExpressionAttributeValues) != 1 {
		return nil, errors.New("expected exactly one expression attribute value")
	}
	var pk string
	for _, v := range params.ExpressionAttributeValues {
		s, ok := v.(*types.AttributeValueMemberS)
		if !ok {
			return nil, errors.New("partition key value must be a string")
		}
		pk = s.Value
	}

	partition := m.ensurePartition(*params.TableName, pk)
	keys := make([]string, 0, len(partition))
	for sk := range partition {
		keys = append(keys, sk)
	}
	sort.Strings(keys)

	start := 0
	if len(params.ExclusiveStartKey) > 0 {
		after, _ := stringAttr(params.ExclusiveStartKey, m.SortKey)
		start = sort.SearchStrings(keys, after)
		if start < len(keys) && keys[start] == after {
			start++
		}
	}
	keys = keys[start:]

	limit := len(keys)
	if m.PageSize > 0 && m.PageSize < limit {
		limit = m.PageSize
	}
	if params.Limit != nil && int(*params.Limit) < limit {
		limit = int(*params.Limit)
	}

	out := &dyn.QueryOutput{Items: make([]map[string]types.AttributeValue, 0, limit)}
	for _, sk := range keys[:limit] {
		out.Items = append(out.Items, partition[sk])
	}
	out.Count = int32(len(out.Items))
	if limit < len(keys) {
		last := keys[limit-1]
		out.LastEvaluatedKey = map[string]types.AttributeValue{
			m.PartitionKey: &types.AttributeValueMemberS{Value: pk},
			m.SortKey:      &types.AttributeValueMemberS{Value: last},
		}
	}
	return out, nil
}

// Item returns a stored item, or nil.
func (m *FakeDynamo) Item(table, pk, sk string) map[string]types.AttributeValue {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.tables[table][pk][sk]
}

// Calls returns the number of PutItem and Query invocations so far.
func (m *FakeDynamo) Calls() (puts, queries int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.PutCalls, m.QueryCalls
}
