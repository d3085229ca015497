package services

import (
	"context"
	"testing"

	"campuslink_server/models"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

func TestCreateMessage(t *testing.T) {
	var stored *dynamodb.PutItemInput
	client := &fakeDynamoClient{
		updateItem: func(in *dynamodb.UpdateItemInput) (*dynamodb.UpdateItemOutput, error) {
			return counterResponse("21"), nil
		},
		putItem: func(in *dynamodb.PutItemInput) (*dynamodb.PutItemOutput, error) {
			stored = in
			return &dynamodb.PutItemOutput{}, nil
		},
	}
	dynamo := &DynamoService{Client: client}
	cs := &ChatService{Dynamo: dynamo, Users: &UserService{Dynamo: dynamo}}

	message, err := cs.CreateMessage(context.Background(), 10, 1, "hello")
	if err != nil {
		t.Fatalf("CreateMessage returned error: %v", err)
	}
	if message.ID != 21 || message.MatchID != 10 || message.SenderID != 1 {
		t.Fatalf("unexpected message %+v", message)
	}
	if message.CreatedAt == "" {
		t.Fatal("expected a creation timestamp")
	}
	if stored == nil || *stored.TableName != models.MessagesTable {
		t.Fatal("expected the message row to be written")
	}
}

func TestGetMessagesByMatchIDAscendingAndEnriched(t *testing.T) {
	history := []models.Message{
		{MatchID: 10, ID: 1, SenderID: 1, Content: "hi"},
		{MatchID: 10, ID: 2, SenderID: 2, Content: "hey"},
		{MatchID: 10, ID: 3, SenderID: 1, Content: "how are you"},
	}
	profiles := map[string]models.User{
		"1": {ID: 1, Name: "Alice"},
		"2": {ID: 2, Name: "Bob"},
	}

	var queried *dynamodb.QueryInput
	profileFetches := 0
	client := &fakeDynamoClient{
		query: func(in *dynamodb.QueryInput) (*dynamodb.QueryOutput, error) {
			queried = in
			items := make([]map[string]types.AttributeValue, 0, len(history))
			for _, m := range history {
				items = append(items, mustMarshalItem(t, m))
			}
			return &dynamodb.QueryOutput{Items: items}, nil
		},
		getItem: func(in *dynamodb.GetItemInput) (*dynamodb.GetItemOutput, error) {
			profileFetches++
			id := in.Key["id"].(*types.AttributeValueMemberN).Value
			return &dynamodb.GetItemOutput{Item: mustMarshalItem(t, profiles[id])}, nil
		},
	}
	dynamo := &DynamoService{Client: client}
	cs := &ChatService{Dynamo: dynamo, Users: &UserService{Dynamo: dynamo}}

	messages, err := cs.GetMessagesByMatchID(context.Background(), 10)
	if err != nil {
		t.Fatalf("GetMessagesByMatchID returned error: %v", err)
	}
	if len(messages) != 3 {
		t.Fatalf("expected 3 messages, got %d", len(messages))
	}
	if messages[0].Content != "hi" || messages[2].Content != "how are you" {
		t.Fatalf("unexpected order: %+v", messages)
	}
	if messages[0].Sender.Name != "Alice" || messages[1].Sender.Name != "Bob" {
		t.Fatalf("expected sender profiles attached: %+v", messages)
	}

	if queried.ScanIndexForward == nil || !*queried.ScanIndexForward {
		t.Fatal("history must be queried oldest first")
	}
	if profileFetches != 2 {
		t.Fatalf("expected one profile fetch per distinct sender, got %d", profileFetches)
	}
}
