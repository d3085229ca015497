package services

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// fakeDynamoClient implements DynamoDBAPI with per-call function fields. A nil
// field means the test does not expect that call.
type fakeDynamoClient struct {
	getItem    func(*dynamodb.GetItemInput) (*dynamodb.GetItemOutput, error)
	putItem    func(*dynamodb.PutItemInput) (*dynamodb.PutItemOutput, error)
	updateItem func(*dynamodb.UpdateItemInput) (*dynamodb.UpdateItemOutput, error)
	deleteItem func(*dynamodb.DeleteItemInput) (*dynamodb.DeleteItemOutput, error)
	query      func(*dynamodb.QueryInput) (*dynamodb.QueryOutput, error)
	scan       func(*dynamodb.ScanInput) (*dynamodb.ScanOutput, error)
}

var errUnexpectedCall = errors.New("unexpected DynamoDB call")

func (f *fakeDynamoClient) GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error) {
	if f.getItem == nil {
		return nil, errUnexpectedCall
	}
	return f.getItem(params)
}

func (f *fakeDynamoClient) PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error) {
	if f.putItem == nil {
		return nil, errUnexpectedCall
	}
	return f.putItem(params)
}

func (f *fakeDynamoClient) UpdateItem(ctx context.Context, params *dynamodb.UpdateItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error) {
	if f.updateItem == nil {
		return nil, errUnexpectedCall
	}
	return f.updateItem(params)
}

func (f *fakeDynamoClient) DeleteItem(ctx context.Context, params *dynamodb.DeleteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error) {
	if f.deleteItem == nil {
		return nil, errUnexpectedCall
	}
	return f.deleteItem(params)
}

func (f *fakeDynamoClient) Query(ctx context.Context, params *dynamodb.QueryInput, optFns ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error) {
	if f.query == nil {
		return nil, errUnexpectedCall
	}
	return f.query(params)
}

func (f *fakeDynamoClient) Scan(ctx context.Context, params *dynamodb.ScanInput, optFns ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error) {
	if f.scan == nil {
		return nil, errUnexpectedCall
	}
	return f.scan(params)
}

func mustMarshalItem(t *testing.T, item interface{}) map[string]types.AttributeValue {
	t.Helper()
	marshaled, err := attributevalue.MarshalMap(item)
	if err != nil {
		t.Fatalf("failed to marshal item: %v", err)
	}
	return marshaled
}

// counterResponse answers a NextID allocation with the given value.
func counterResponse(value string) *dynamodb.UpdateItemOutput {
	return &dynamodb.UpdateItemOutput{
		Attributes: map[string]types.AttributeValue{
			"counterValue": &types.AttributeValueMemberN{Value: value},
		},
	}
}

func TestGetItemNotFound(t *testing.T) {
	client := &fakeDynamoClient{
		getItem: func(in *dynamodb.GetItemInput) (*dynamodb.GetItemOutput, error) {
			return &dynamodb.GetItemOutput{Item: nil}, nil
		},
	}
	ds := &DynamoService{Client: client}

	_, err := ds.GetItem(context.Background(), "Users", map[string]types.AttributeValue{
		"id": &types.AttributeValueMemberN{Value: "1"},
	})
	if !errors.Is(err, ErrItemNotFound) {
		t.Fatalf("expected ErrItemNotFound, got %v", err)
	}
}

func TestPutItemWithConditionLoss(t *testing.T) {
	client := &fakeDynamoClient{
		putItem: func(in *dynamodb.PutItemInput) (*dynamodb.PutItemOutput, error) {
			return nil, &types.ConditionalCheckFailedException{}
		},
	}
	ds := &DynamoService{Client: client}

	err := ds.PutItemWithCondition(context.Background(), "Matches", struct{}{}, "attribute_not_exists(pairKey)")
	if !errors.Is(err, ErrConditionFailed) {
		t.Fatalf("expected ErrConditionFailed, got %v", err)
	}
}

func TestNextID(t *testing.T) {
	var captured *dynamodb.UpdateItemInput
	client := &fakeDynamoClient{
		updateItem: func(in *dynamodb.UpdateItemInput) (*dynamodb.UpdateItemOutput, error) {
			captured = in
			return counterResponse("42"), nil
		},
	}
	ds := &DynamoService{Client: client}

	id, err := ds.NextID(context.Background(), "matches")
	if err != nil {
		t.Fatalf("NextID returned error: %v", err)
	}
	if id != 42 {
		t.Fatalf("expected id 42, got %d", id)
	}
	if *captured.TableName != "Counters" {
		t.Fatalf("expected counter table, got %q", *captured.TableName)
	}
	if *captured.UpdateExpression != "ADD #v :one" {
		t.Fatalf("unexpected update expression %q", *captured.UpdateExpression)
	}
}
