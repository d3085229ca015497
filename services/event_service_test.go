package services

import (
	"context"
	"errors"
	"testing"

	"campuslink_server/models"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

func TestJoinAndLeaveEventExpressions(t *testing.T) {
	tests := []struct {
		name     string
		run      func(es *EventService) error
		wantVerb string
	}{
		{"join adds to the set", func(es *EventService) error { return es.JoinEvent(context.Background(), 3, 7) }, "ADD attendees :userId"},
		{"leave removes from the set", func(es *EventService) error { return es.LeaveEvent(context.Background(), 3, 7) }, "DELETE attendees :userId"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var captured *dynamodb.UpdateItemInput
			client := &fakeDynamoClient{
				updateItem: func(in *dynamodb.UpdateItemInput) (*dynamodb.UpdateItemOutput, error) {
					captured = in
					return &dynamodb.UpdateItemOutput{Attributes: map[string]types.AttributeValue{}}, nil
				},
			}
			dynamo := &DynamoService{Client: client}
			es := &EventService{Dynamo: dynamo, Users: &UserService{Dynamo: dynamo}}

			if err := tt.run(es); err != nil {
				t.Fatalf("attendance update returned error: %v", err)
			}
			if *captured.UpdateExpression != tt.wantVerb {
				t.Fatalf("expected expression %q, got %q", tt.wantVerb, *captured.UpdateExpression)
			}
			attendee, ok := captured.ExpressionAttributeValues[":userId"].(*types.AttributeValueMemberNS)
			if !ok || len(attendee.Value) != 1 || attendee.Value[0] != "7" {
				t.Fatalf("unexpected :userId attribute %#v", captured.ExpressionAttributeValues[":userId"])
			}
			if *captured.ConditionExpression != "attribute_exists(id)" {
				t.Fatalf("unexpected condition %q", *captured.ConditionExpression)
			}
		})
	}
}

func TestJoinUnknownEvent(t *testing.T) {
	client := &fakeDynamoClient{
		updateItem: func(in *dynamodb.UpdateItemInput) (*dynamodb.UpdateItemOutput, error) {
			return nil, &types.ConditionalCheckFailedException{}
		},
	}
	dynamo := &DynamoService{Client: client}
	es := &EventService{Dynamo: dynamo, Users: &UserService{Dynamo: dynamo}}

	err := es.JoinEvent(context.Background(), 404, 7)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestGetEventsForCollegeSortedByStart(t *testing.T) {
	events := []models.Event{
		{ID: 2, College: "State", CreatedBy: 1, Datetime: "2026-09-02T18:00:00Z"},
		{ID: 1, College: "State", CreatedBy: 1, Datetime: "2026-09-01T18:00:00Z"},
	}
	creator := models.User{ID: 1, Name: "Alice"}

	client := &fakeDynamoClient{
		query: func(in *dynamodb.QueryInput) (*dynamodb.QueryOutput, error) {
			if *in.IndexName != models.EventsCollegeIndex {
				t.Fatalf("unexpected index %q", *in.IndexName)
			}
			items := make([]map[string]types.AttributeValue, 0, len(events))
			for _, e := range events {
				items = append(items, mustMarshalItem(t, e))
			}
			return &dynamodb.QueryOutput{Items: items}, nil
		},
		getItem: func(in *dynamodb.GetItemInput) (*dynamodb.GetItemOutput, error) {
			return &dynamodb.GetItemOutput{Item: mustMarshalItem(t, creator)}, nil
		},
	}
	dynamo := &DynamoService{Client: client}
	es := &EventService{Dynamo: dynamo, Users: &UserService{Dynamo: dynamo}}

	result, err := es.GetEventsForCollege(context.Background(), "State")
	if err != nil {
		t.Fatalf("GetEventsForCollege returned error: %v", err)
	}
	if len(result) != 2 {
		t.Fatalf("expected 2 events, got %d", len(result))
	}
	if result[0].ID != 1 || result[1].ID != 2 {
		t.Fatalf("expected events ordered by start time: %+v", result)
	}
	if result[0].Creator.Name != "Alice" {
		t.Fatalf("expected the creator profile attached: %+v", result[0])
	}
}
