package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sort"
	"time"

	"campuslink_server/models"
	"campuslink_server/utils"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

type EventService struct {
	Dynamo *DynamoService
	Users  *UserService
}

// CreateEvent stores a new campus event
func (es *EventService) CreateEvent(ctx context.Context, event models.Event) (models.Event, error) {
	id, err := es.Dynamo.NextID(ctx, models.CounterEvents)
	if err != nil {
		return models.Event{}, err
	}

	event.ID = id
	event.CreatedAt = time.Now().UTC().Format(time.RFC3339)

	if err := es.Dynamo.PutItem(ctx, models.EventsTable, event); err != nil {
		return models.Event{}, fmt.Errorf("failed to create event: %w", err)
	}
	return event, nil
}

// GetEventsForCollege lists a college's events ordered by start time, each
// enriched with the creator's profile.
func (es *EventService) GetEventsForCollege(ctx context.Context, college string) ([]models.EventWithCreator, error) {
	keyCondition := "college = :college"
	expressionValues := map[string]types.AttributeValue{
		":college": &types.AttributeValueMemberS{Value: college},
	}

	items, err := es.Dynamo.QueryItemsWithIndex(ctx, models.EventsTable, models.EventsCollegeIndex, keyCondition, expressionValues, nil, 0)
	if err != nil {
		return nil, err
	}

	var events []models.Event
	if err := attributevalue.UnmarshalListOfMaps(items, &events); err != nil {
		return nil, fmt.Errorf("failed to unmarshal events: %w", err)
	}

	sort.SliceStable(events, func(i, j int) bool {
		return events[i].Datetime < events[j].Datetime
	})

	enriched := make([]models.EventWithCreator, 0, len(events))
	for _, event := range events {
		creator, err := es.Users.GetUserByID(ctx, event.CreatedBy)
		if err != nil {
			log.Printf("skipping event %d, missing creator %d: %v", event.ID, event.CreatedBy, err)
			continue
		}
		enriched = append(enriched, models.EventWithCreator{Event: event, Creator: creator})
	}
	return enriched, nil
}

// JoinEvent adds the user to the event's attendee set. Joining twice is a
// no-op because attendees is a set.
func (es *EventService) JoinEvent(ctx context.Context, eventID, userID int) error {
	return es.updateAttendees(ctx, eventID, userID, "ADD attendees :userId")
}

// LeaveEvent removes the user from the event's attendee set. Leaving a
// non-member is a no-op.
func (es *EventService) LeaveEvent(ctx context.Context, eventID, userID int) error {
	return es.updateAttendees(ctx, eventID, userID, "DELETE attendees :userId")
}

func (es *EventService) updateAttendees(ctx context.Context, eventID, userID int, updateExpression string) error {
	key := map[string]types.AttributeValue{
		"id": &types.AttributeValueMemberN{Value: fmt.Sprintf("%d", eventID)},
	}
	values := map[string]types.AttributeValue{
		":userId": utils.NumberSet(userID),
	}

	_, err := es.Dynamo.UpdateItemWithCondition(ctx, models.EventsTable, updateExpression, "attribute_exists(id)", key, values, nil)
	if err != nil {
		if errors.Is(err, ErrConditionFailed) {
			return fmt.Errorf("event %d: %w", eventID, ErrNotFound)
		}
		return fmt.Errorf("failed to update attendees for event %d: %w", eventID, err)
	}
	return nil
}
