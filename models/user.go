package models

// User defines the structure for member profiles
type User struct {
	ID                int      `json:"id" dynamodbav:"id"`
	Email             string   `json:"email" dynamodbav:"email"`
	Password          string   `json:"-" dynamodbav:"password"`
	Name              string   `json:"name" dynamodbav:"name"`
	Age               int      `json:"age" dynamodbav:"age"`
	College           string   `json:"college" dynamodbav:"college"`
	Major             string   `json:"major,omitempty" dynamodbav:"major,omitempty"`
	Year              string   `json:"year,omitempty" dynamodbav:"year,omitempty"`
	Bio               string   `json:"bio,omitempty" dynamodbav:"bio,omitempty"`
	Interests         []string `json:"interests" dynamodbav:"interests,omitempty"`
	ProfilePhotos     []string `json:"profilePhotos" dynamodbav:"profilePhotos,omitempty"`
	SwipedLeft        []int    `json:"swipedLeft" dynamodbav:"swipedLeft,numberset,omitempty"`
	SwipedRight       []int    `json:"swipedRight" dynamodbav:"swipedRight,numberset,omitempty"`
	IsProfileComplete bool     `json:"isProfileComplete" dynamodbav:"isProfileComplete"`
	CreatedAt         string   `json:"createdAt" dynamodbav:"createdAt"`
	UpdatedAt         string   `json:"updatedAt" dynamodbav:"updatedAt"`
}

// HasSwiped reports whether the user already evaluated targetID in either direction.
func (u *User) HasSwiped(targetID int) bool {
	for _, id := range u.SwipedLeft {
		if id == targetID {
			return true
		}
	}
	for _, id := range u.SwipedRight {
		if id == targetID {
			return true
		}
	}
	return false
}

// HasLiked reports whether targetID is in the user's right-swipe set.
func (u *User) HasLiked(targetID int) bool {
	for _, id := range u.SwipedRight {
		if id == targetID {
			return true
		}
	}
	return false
}

// UsersTable is the DynamoDB table name for users
const UsersTable = "Users"

// UsersEmailIndex is the GSI used to look up a user by email at login/register
const UsersEmailIndex = "email-index"
