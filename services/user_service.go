package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"campuslink_server/models"
	"campuslink_server/utils"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// PotentialMatchPageSize bounds the discovery feed.
const PotentialMatchPageSize = 10

type UserService struct {
	Dynamo *DynamoService
}

// ProfileUpdate carries the mutable profile fields; nil fields are left untouched.
type ProfileUpdate struct {
	Name              *string   `json:"name"`
	Age               *int      `json:"age"`
	College           *string   `json:"college"`
	Major             *string   `json:"major"`
	Year              *string   `json:"year"`
	Bio               *string   `json:"bio"`
	Interests         *[]string `json:"interests"`
	ProfilePhotos     *[]string `json:"profilePhotos"`
	IsProfileComplete *bool     `json:"isProfileComplete"`
}

// CreateUser registers a new user. The email must be free; the password is
// expected to arrive already hashed.
func (us *UserService) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	if _, err := us.GetUserByEmail(ctx, user.Email); err == nil {
		return models.User{}, fmt.Errorf("email '%s' already registered: %w", user.Email, ErrConflict)
	} else if !errors.Is(err, ErrNotFound) {
		return models.User{}, err
	}

	id, err := us.Dynamo.NextID(ctx, models.CounterUsers)
	if err != nil {
		return models.User{}, err
	}

	now := time.Now().UTC().Format(time.RFC3339)
	user.ID = id
	user.CreatedAt = now
	user.UpdatedAt = now

	if err := us.Dynamo.PutItem(ctx, models.UsersTable, user); err != nil {
		return models.User{}, fmt.Errorf("failed to create user: %w", err)
	}
	return user, nil
}

// GetUserByID retrieves a user by primary key
func (us *UserService) GetUserByID(ctx context.Context, userID int) (models.User, error) {
	key := map[string]types.AttributeValue{
		"id": &types.AttributeValueMemberN{Value: fmt.Sprintf("%d", userID)},
	}

	item, err := us.Dynamo.GetItem(ctx, models.UsersTable, key)
	if err != nil {
		if errors.Is(err, ErrItemNotFound) {
			return models.User{}, fmt.Errorf("user %d: %w", userID, ErrNotFound)
		}
		return models.User{}, err
	}

	var user models.User
	if err := attributevalue.UnmarshalMap(item, &user); err != nil {
		return models.User{}, fmt.Errorf("failed to unmarshal user: %w", err)
	}
	return user, nil
}

// GetUserByEmail retrieves a user through the email GSI
func (us *UserService) GetUserByEmail(ctx context.Context, email string) (models.User, error) {
	keyCondition := "email = :email"
	expressionValues := map[string]types.AttributeValue{
		":email": &types.AttributeValueMemberS{Value: email},
	}

	items, err := us.Dynamo.QueryItemsWithIndex(ctx, models.UsersTable, models.UsersEmailIndex, keyCondition, expressionValues, nil, 1)
	if err != nil {
		return models.User{}, err
	}
	if len(items) == 0 {
		return models.User{}, fmt.Errorf("user with email '%s': %w", email, ErrNotFound)
	}

	var user models.User
	if err := attributevalue.UnmarshalMap(items[0], &user); err != nil {
		return models.User{}, fmt.Errorf("failed to unmarshal user: %w", err)
	}
	return user, nil
}

// UpdateProfile applies the non-nil fields of updates and bumps updatedAt.
func (us *UserService) UpdateProfile(ctx context.Context, userID int, updates ProfileUpdate) (models.User, error) {
	setClauses := []string{"#updatedAt = :updatedAt"}
	names := map[string]string{"#updatedAt": "updatedAt"}
	values := map[string]types.AttributeValue{
		":updatedAt": &types.AttributeValueMemberS{Value: time.Now().UTC().Format(time.RFC3339)},
	}

	addField := func(field string, value interface{}) error {
		av, err := attributevalue.Marshal(value)
		if err != nil {
			return fmt.Errorf("failed to marshal field '%s': %w", field, err)
		}
		names["#"+field] = field
		values[":"+field] = av
		setClauses = append(setClauses, fmt.Sprintf("#%s = :%s", field, field))
		return nil
	}

	if updates.Name != nil {
		if err := addField("name", *updates.Name); err != nil {
			return models.User{}, err
		}
	}
	if updates.Age != nil {
		if err := addField("age", *updates.Age); err != nil {
			return models.User{}, err
		}
	}
	if updates.College != nil {
		if err := addField("college", *updates.College); err != nil {
			return models.User{}, err
		}
	}
	if updates.Major != nil {
		if err := addField("major", *updates.Major); err != nil {
			return models.User{}, err
		}
	}
	if updates.Year != nil {
		if err := addField("year", *updates.Year); err != nil {
			return models.User{}, err
		}
	}
	if updates.Bio != nil {
		if err := addField("bio", *updates.Bio); err != nil {
			return models.User{}, err
		}
	}
	if updates.Interests != nil {
		if err := addField("interests", *updates.Interests); err != nil {
			return models.User{}, err
		}
	}
	if updates.ProfilePhotos != nil {
		if err := addField("profilePhotos", *updates.ProfilePhotos); err != nil {
			return models.User{}, err
		}
	}
	if updates.IsProfileComplete != nil {
		if err := addField("isProfileComplete", *updates.IsProfileComplete); err != nil {
			return models.User{}, err
		}
	}

	updateExpression := "SET " + setClauses[0]
	for _, clause := range setClauses[1:] {
		updateExpression += ", " + clause
	}

	key := map[string]types.AttributeValue{
		"id": &types.AttributeValueMemberN{Value: fmt.Sprintf("%d", userID)},
	}
	attrs, err := us.Dynamo.UpdateItemWithCondition(ctx, models.UsersTable, updateExpression, "attribute_exists(id)", key, values, names)
	if err != nil {
		if errors.Is(err, ErrConditionFailed) {
			return models.User{}, fmt.Errorf("user %d: %w", userID, ErrNotFound)
		}
		return models.User{}, err
	}

	var user models.User
	if err := attributevalue.UnmarshalMap(attrs, &user); err != nil {
		return models.User{}, fmt.Errorf("failed to unmarshal updated user: %w", err)
	}
	return user, nil
}

// RecordSwipe moves targetID into the actor's chosen swipe set and out of the
// opposite one. Both sides are set operations, so resubmitting the same swipe
// is a no-op.
func (us *UserService) RecordSwipe(ctx context.Context, actorID, targetID int, isRightSwipe bool) error {
	addSet, removeSet := "swipedLeft", "swipedRight"
	if isRightSwipe {
		addSet, removeSet = "swipedRight", "swipedLeft"
	}

	updateExpression := "SET #updatedAt = :now ADD #addSet :target DELETE #removeSet :target"
	names := map[string]string{
		"#updatedAt": "updatedAt",
		"#addSet":    addSet,
		"#removeSet": removeSet,
	}
	values := map[string]types.AttributeValue{
		":now":    &types.AttributeValueMemberS{Value: time.Now().UTC().Format(time.RFC3339)},
		":target": utils.NumberSet(targetID),
	}

	key := map[string]types.AttributeValue{
		"id": &types.AttributeValueMemberN{Value: fmt.Sprintf("%d", actorID)},
	}
	_, err := us.Dynamo.UpdateItemWithCondition(ctx, models.UsersTable, updateExpression, "attribute_exists(id)", key, values, names)
	if err != nil {
		if errors.Is(err, ErrConditionFailed) {
			return fmt.Errorf("user %d: %w", actorID, ErrNotFound)
		}
		return fmt.Errorf("failed to record swipe: %w", err)
	}
	return nil
}

// GetPotentialMatches returns up to PotentialMatchPageSize complete profiles
// from the user's college, excluding the user and anyone already swiped.
func (us *UserService) GetPotentialMatches(ctx context.Context, userID int) ([]models.User, error) {
	user, err := us.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	exclude := map[int]struct{}{userID: {}}
	for _, id := range user.SwipedLeft {
		exclude[id] = struct{}{}
	}
	for _, id := range user.SwipedRight {
		exclude[id] = struct{}{}
	}

	filterExpression := "college = :college AND isProfileComplete = :complete"
	values := map[string]types.AttributeValue{
		":college":  &types.AttributeValueMemberS{Value: user.College},
		":complete": &types.AttributeValueMemberBOOL{Value: true},
	}

	var candidates []models.User
	err = us.Dynamo.ScanWithFilter(ctx, models.UsersTable, filterExpression, values, nil, func(item map[string]types.AttributeValue) bool {
		_, excluded := exclude[utils.ExtractInt(item, "id")]
		return !excluded
	}, &candidates)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch potential matches: %w", err)
	}

	if len(candidates) > PotentialMatchPageSize {
		candidates = candidates[:PotentialMatchPageSize]
	}
	return candidates, nil
}
