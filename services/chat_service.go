package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"campuslink_server/models"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// ChatService persists and fetches chat messages. Message ids come from an
// increasing counter, so the sort key order is the display order.
type ChatService struct {
	Dynamo *DynamoService
	Users  *UserService
}

// CreateMessage stores a new immutable message in the Messages table
func (cs *ChatService) CreateMessage(ctx context.Context, matchID, senderID int, content string) (models.Message, error) {
	id, err := cs.Dynamo.NextID(ctx, models.CounterMessages)
	if err != nil {
		return models.Message{}, err
	}

	message := models.Message{
		MatchID:   matchID,
		ID:        id,
		SenderID:  senderID,
		Content:   content,
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
	}

	if err := cs.Dynamo.PutItem(ctx, models.MessagesTable, message); err != nil {
		return models.Message{}, fmt.Errorf("failed to store message: %w", err)
	}
	return message, nil
}

// GetMessagesByMatchID fetches a match's messages in creation order, each
// enriched with the sender's profile.
func (cs *ChatService) GetMessagesByMatchID(ctx context.Context, matchID int) ([]models.MessageWithSender, error) {
	keyCondition := "matchId = :matchId"
	expressionValues := map[string]types.AttributeValue{
		":matchId": &types.AttributeValueMemberN{Value: fmt.Sprintf("%d", matchID)},
	}

	items, err := cs.Dynamo.QueryItemsWithOptions(ctx, models.MessagesTable, keyCondition, expressionValues, nil, 0, true)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch messages: %w", err)
	}

	var messages []models.Message
	if err := attributevalue.UnmarshalListOfMaps(items, &messages); err != nil {
		return nil, fmt.Errorf("failed to parse messages: %w", err)
	}

	senders := map[int]models.User{}
	enriched := make([]models.MessageWithSender, 0, len(messages))
	for _, message := range messages {
		sender, ok := senders[message.SenderID]
		if !ok {
			sender, err = cs.Users.GetUserByID(ctx, message.SenderID)
			if err != nil {
				log.Printf("skipping message %d, missing sender %d: %v", message.ID, message.SenderID, err)
				continue
			}
			senders[message.SenderID] = sender
		}
		enriched = append(enriched, models.MessageWithSender{Message: message, Sender: sender})
	}
	return enriched, nil
}
