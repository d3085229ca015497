package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sort"
	"time"

	"campuslink_server/models"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// MatchService implements the swipe/match engine: it records swipes, detects
// mutual likes and creates at most one match per unordered user pair.
type MatchService struct {
	Dynamo *DynamoService
	Users  *UserService
}

// RecordSwipe records the actor's swipe on the target and, on a right swipe
// that completes a mutual like, creates the match. Returns nil when no match
// was made.
func (ms *MatchService) RecordSwipe(ctx context.Context, actorID, targetID int, isRightSwipe bool) (*models.Match, error) {
	if actorID == targetID {
		return nil, fmt.Errorf("cannot swipe on yourself: %w", ErrForbidden)
	}

	if err := ms.Users.RecordSwipe(ctx, actorID, targetID, isRightSwipe); err != nil {
		return nil, err
	}

	if !isRightSwipe {
		return nil, nil
	}

	// The target's like-set is read only after the actor's swipe is durable.
	// Of two concurrent mutual right-swipes, the later read necessarily sees
	// the earlier write, so at least one side observes the mutual like; the
	// conditional put below collapses both-observe to a single row. The
	// actor's own swipe lives in the actor's record and cannot count here.
	target, err := ms.Users.GetUserByID(ctx, targetID)
	if err != nil {
		return nil, err
	}

	if !target.HasLiked(actorID) {
		return nil, nil
	}

	match, err := ms.CreateMatch(ctx, actorID, targetID)
	if err != nil {
		return nil, err
	}
	return &match, nil
}

// CreateMatch inserts the match row for an unordered pair. The put is guarded
// by the pair key, so concurrent mutual swipes resolve to a single row: the
// losing writer reads the existing match back instead of erroring.
func (ms *MatchService) CreateMatch(ctx context.Context, user1ID, user2ID int) (models.Match, error) {
	id, err := ms.Dynamo.NextID(ctx, models.CounterMatches)
	if err != nil {
		return models.Match{}, err
	}

	match := models.Match{
		PairKey:   models.MatchPairKey(user1ID, user2ID),
		ID:        id,
		User1ID:   user1ID,
		User2ID:   user2ID,
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
	}

	err = ms.Dynamo.PutItemWithCondition(ctx, models.MatchesTable, match, "attribute_not_exists(pairKey)")
	if err != nil {
		if errors.Is(err, ErrConditionFailed) {
			log.Printf("match for pair %s already exists, returning existing row", match.PairKey)
			return ms.GetMatchByPair(ctx, user1ID, user2ID)
		}
		return models.Match{}, err
	}
	return match, nil
}

// GetMatchByPair retrieves the match for an unordered user pair
func (ms *MatchService) GetMatchByPair(ctx context.Context, user1ID, user2ID int) (models.Match, error) {
	key := map[string]types.AttributeValue{
		"pairKey": &types.AttributeValueMemberS{Value: models.MatchPairKey(user1ID, user2ID)},
	}

	item, err := ms.Dynamo.GetItem(ctx, models.MatchesTable, key)
	if err != nil {
		if errors.Is(err, ErrItemNotFound) {
			return models.Match{}, fmt.Errorf("match for pair (%d,%d): %w", user1ID, user2ID, ErrNotFound)
		}
		return models.Match{}, err
	}

	var match models.Match
	if err := attributevalue.UnmarshalMap(item, &match); err != nil {
		return models.Match{}, fmt.Errorf("failed to unmarshal match: %w", err)
	}
	return match, nil
}

// GetMatchByID retrieves a match through the id GSI
func (ms *MatchService) GetMatchByID(ctx context.Context, matchID int) (models.Match, error) {
	keyCondition := "id = :id"
	expressionValues := map[string]types.AttributeValue{
		":id": &types.AttributeValueMemberN{Value: fmt.Sprintf("%d", matchID)},
	}

	items, err := ms.Dynamo.QueryItemsWithIndex(ctx, models.MatchesTable, models.MatchIDIndex, keyCondition, expressionValues, nil, 1)
	if err != nil {
		return models.Match{}, err
	}
	if len(items) == 0 {
		return models.Match{}, fmt.Errorf("match %d: %w", matchID, ErrNotFound)
	}

	var match models.Match
	if err := attributevalue.UnmarshalMap(items[0], &match); err != nil {
		return models.Match{}, fmt.Errorf("failed to unmarshal match: %w", err)
	}
	return match, nil
}

// GetMatchesForUser returns all matches for the user, newest first, each
// enriched with the other participant's profile.
func (ms *MatchService) GetMatchesForUser(ctx context.Context, userID int) ([]models.MatchWithUser, error) {
	var matches []models.Match
	for _, index := range []struct {
		name string
		attr string
	}{
		{models.MatchUser1Index, "user1Id"},
		{models.MatchUser2Index, "user2Id"},
	} {
		keyCondition := fmt.Sprintf("%s = :userId", index.attr)
		expressionValues := map[string]types.AttributeValue{
			":userId": &types.AttributeValueMemberN{Value: fmt.Sprintf("%d", userID)},
		}

		items, err := ms.Dynamo.QueryItemsWithIndex(ctx, models.MatchesTable, index.name, keyCondition, expressionValues, nil, 0)
		if err != nil {
			return nil, err
		}

		var page []models.Match
		if err := attributevalue.UnmarshalListOfMaps(items, &page); err != nil {
			return nil, fmt.Errorf("failed to unmarshal matches: %w", err)
		}
		matches = append(matches, page...)
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].CreatedAt > matches[j].CreatedAt
	})

	enriched := make([]models.MatchWithUser, 0, len(matches))
	for _, match := range matches {
		otherID, ok := match.OtherUserID(userID)
		if !ok {
			continue
		}
		otherUser, err := ms.Users.GetUserByID(ctx, otherID)
		if err != nil {
			log.Printf("skipping match %d, missing profile for user %d: %v", match.ID, otherID, err)
			continue
		}
		enriched = append(enriched, models.MatchWithUser{Match: match, OtherUser: otherUser})
	}
	return enriched, nil
}
