package models

// Compliment is a directed, anonymous-by-default note between two users.
// The sender identity is exposed to the recipient only when IsRevealed is set.
type Compliment struct {
	ToUserID   int    `json:"toUserId" dynamodbav:"toUserId"`
	ID         int    `json:"id" dynamodbav:"id"`
	FromUserID int    `json:"fromUserId,omitempty" dynamodbav:"fromUserId"`
	Message    string `json:"message" dynamodbav:"message"`
	IsRevealed bool   `json:"isRevealed" dynamodbav:"isRevealed"`
	CreatedAt  string `json:"createdAt" dynamodbav:"createdAt"`
}

// ComplimentWithSender carries the sender profile when the compliment is
// revealed; FromUser stays null for anonymous compliments.
type ComplimentWithSender struct {
	Compliment
	FromUser *User `json:"fromUser"`
}

// ComplimentsTable is the DynamoDB table name for compliments
const ComplimentsTable = "Compliments"
