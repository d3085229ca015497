package services

import (
	"context"
	"fmt"
	"time"

	"campuslink_server/models"
	"campuslink_server/utils"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

type ComplimentService struct {
	Dynamo *DynamoService
	Users  *UserService
}

// CreateCompliment stores a compliment directed at toUserID. The recipient
// must exist; the sender identity stays hidden unless isRevealed.
func (cs *ComplimentService) CreateCompliment(ctx context.Context, fromUserID, toUserID int, message string, isRevealed bool) (models.Compliment, error) {
	if _, err := cs.Users.GetUserByID(ctx, toUserID); err != nil {
		return models.Compliment{}, err
	}

	id, err := cs.Dynamo.NextID(ctx, models.CounterCompliments)
	if err != nil {
		return models.Compliment{}, err
	}

	compliment := models.Compliment{
		ToUserID:   toUserID,
		ID:         id,
		FromUserID: fromUserID,
		Message:    message,
		IsRevealed: isRevealed,
		CreatedAt:  time.Now().UTC().Format(time.RFC3339),
	}

	if err := cs.Dynamo.PutItem(ctx, models.ComplimentsTable, compliment); err != nil {
		return models.Compliment{}, fmt.Errorf("failed to create compliment: %w", err)
	}
	return compliment, nil
}

// GetComplimentsForUser lists the user's received compliments, newest first.
// The sender profile is attached only for revealed compliments.
func (cs *ComplimentService) GetComplimentsForUser(ctx context.Context, userID int) ([]models.ComplimentWithSender, error) {
	keyCondition := "toUserId = :userId"
	expressionValues := map[string]types.AttributeValue{
		":userId": &types.AttributeValueMemberN{Value: fmt.Sprintf("%d", userID)},
	}

	items, err := cs.Dynamo.QueryItemsWithOptions(ctx, models.ComplimentsTable, keyCondition, expressionValues, nil, 0, false)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch compliments: %w", err)
	}

	var compliments []models.Compliment
	if err := attributevalue.UnmarshalListOfMaps(items, &compliments); err != nil {
		return nil, fmt.Errorf("failed to unmarshal compliments: %w", err)
	}

	enriched := make([]models.ComplimentWithSender, 0, len(compliments))
	for _, compliment := range compliments {
		entry := models.ComplimentWithSender{Compliment: compliment}
		if compliment.IsRevealed {
			if sender, err := cs.Users.GetUserByID(ctx, compliment.FromUserID); err == nil {
				entry.FromUser = &sender
			}
		} else {
			// Anonymous: the sender id must not reach the recipient.
			entry.FromUserID = 0
		}
		enriched = append(enriched, entry)
	}
	return enriched, nil
}

// GetUsersForCompliments returns the complete profiles of a college, minus
// the requesting user, as compliment targets.
func (cs *ComplimentService) GetUsersForCompliments(ctx context.Context, college string, excludeUserID int) ([]models.User, error) {
	filterExpression := "college = :college AND isProfileComplete = :complete"
	values := map[string]types.AttributeValue{
		":college":  &types.AttributeValueMemberS{Value: college},
		":complete": &types.AttributeValueMemberBOOL{Value: true},
	}

	var candidates []models.User
	err := cs.Dynamo.ScanWithFilter(ctx, models.UsersTable, filterExpression, values, nil, func(item map[string]types.AttributeValue) bool {
		return utils.ExtractInt(item, "id") != excludeUserID
	}, &candidates)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch compliment targets: %w", err)
	}
	return candidates, nil
}
