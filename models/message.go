package models

// Message is a single chat message within a match. Messages are immutable;
// ids are allocated from an increasing counter so the sort key order is the
// creation order.
type Message struct {
	MatchID   int    `json:"matchId" dynamodbav:"matchId"`
	ID        int    `json:"id" dynamodbav:"id"`
	SenderID  int    `json:"senderId" dynamodbav:"senderId"`
	Content   string `json:"content" dynamodbav:"content"`
	CreatedAt string `json:"createdAt" dynamodbav:"createdAt"`
}

// MessageWithSender is a message enriched with the sender's profile.
type MessageWithSender struct {
	Message
	Sender User `json:"sender"`
}

// MessagesTable is the DynamoDB table name for messages
const MessagesTable = "Messages"
