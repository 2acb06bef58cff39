package attendance

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	dyn "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/imrishuroy/go-attendance-punch/internal/aws"
)

// DefaultTableName is used when TABLE_NAME is not configured.
const DefaultTableName = "AttendanceTable"

// Store encapsulates operations on the attendance table.
type Store struct {
	client    aws.DynamoDBAPI
	tableName string
}

// NewStore creates a new attendance Store.
func NewStore(client aws.DynamoDBAPI, tableName string) *Store {
	return &Store{
		client:    client,
		tableName: tableName,
	}
}

// TableName returns the table the store writes to.
func (s *Store) TableName() string { return s.tableName }

// Put writes the punch keyed by (userId, timestamp). An existing item with the
// same key pair is overwritten.
func (s *Store) Put(ctx context.Context, p Punch) error {
	item, err := attributevalue.MarshalMap(p)
	if err != nil {
		return fmt.Errorf("marshal punch: %w", err)
	}

	_, err = s.client.PutItem(ctx, &dyn.PutItemInput{
		TableName: &s.tableName,
		Item:      item,
	})
	if err != nil {
		return fmt.Errorf("put item: %w", err)
	}
	return nil
}

// ListByUser returns every punch in the userID partition, in ascending
// timestamp order. Continuation tokens are followed until the partition is
// exhausted. An unknown user yields an empty, non-nil slice.
func (s *Store) ListByUser(ctx context.Context, userID string) ([]Punch, error) {
	input := &dyn.QueryInput{
		TableName:              &s.tableName,
		KeyConditionExpression: awsString("#uid = :uid"),
		ExpressionAttributeNames: map[string]string{
			"#uid": "userId",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":uid": &types.AttributeValueMemberS{Value: userID},
		},
	}

	punches := make([]Punch, 0)
	paginator := dyn.NewQueryPaginator(s.client, input)
	for paginator.HasMorePages() {
		out, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("query user %q: %w", userID, err)
		}
		var page []Punch
		if err := attributevalue.UnmarshalListOfMaps(out.Items, &page); err != nil {
			return nil, fmt.Errorf("unmarshal punches: %w", err)
		}
		punches = append(punches, page...)
	}
	return punches, nil
}

func awsString(s string) *string { return &s }
