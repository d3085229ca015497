package models

// Event is a campus event. Attendees are stored as a number set, so joining
// twice or leaving without joining are no-ops at the storage layer.
type Event struct {
	ID          int    `json:"id" dynamodbav:"id"`
	Title       string `json:"title" dynamodbav:"title"`
	Description string `json:"description" dynamodbav:"description"`
	Location    string `json:"location" dynamodbav:"location"`
	Datetime    string `json:"datetime" dynamodbav:"datetime"`
	CreatedBy   int    `json:"createdBy" dynamodbav:"createdBy"`
	Attendees   []int  `json:"attendees" dynamodbav:"attendees,numberset,omitempty"`
	College     string `json:"college" dynamodbav:"college"`
	Category    string `json:"category" dynamodbav:"category"`
	CreatedAt   string `json:"createdAt" dynamodbav:"createdAt"`
}

// EventWithCreator is an event enriched with its creator's profile.
type EventWithCreator struct {
	Event
	Creator User `json:"creator"`
}

// EventsTable is the DynamoDB table name for events
const EventsTable = "Events"

// EventsCollegeIndex is the GSI used to list events by college
const EventsCollegeIndex = "college-index"
