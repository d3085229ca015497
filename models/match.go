package models

import "fmt"

// Match records a mutual right-swipe between two users. The table's partition
// key is the unordered pair key, so at most one row can ever exist per pair.
type Match struct {
	PairKey   string `json:"-" dynamodbav:"pairKey"`
	ID        int    `json:"id" dynamodbav:"id"`
	User1ID   int    `json:"user1Id" dynamodbav:"user1Id"`
	User2ID   int    `json:"user2Id" dynamodbav:"user2Id"`
	CreatedAt string `json:"createdAt" dynamodbav:"createdAt"`
}

// MatchWithUser is a match enriched with the other participant's profile.
type MatchWithUser struct {
	Match
	OtherUser User `json:"otherUser"`
}

// MatchPairKey builds the canonical key for an unordered user pair.
func MatchPairKey(a, b int) string {
	if a > b {
		a, b = b, a
	}
	return fmt.Sprintf("%d#%d", a, b)
}

// HasParticipant reports whether userID is one of the match's two users.
func (m *Match) HasParticipant(userID int) bool {
	return m.User1ID == userID || m.User2ID == userID
}

// OtherUserID resolves the peer of userID within the match.
func (m *Match) OtherUserID(userID int) (int, bool) {
	switch userID {
	case m.User1ID:
		return m.User2ID, true
	case m.User2ID:
		return m.User1ID, true
	}
	return 0, false
}

// MatchesTable is the DynamoDB table name for matches
const MatchesTable = "Matches"

// Secondary indexes on the Matches table
const (
	MatchIDIndex    = "id-index"
	MatchUser1Index = "user1-index"
	MatchUser2Index = "user2-index"
)
