package model

import "time"

// MaxReviewComment is the longest comment accepted, in characters.
const MaxReviewComment = 500

// Review is a user's rating of the service.  A user holds at most one.
type Review struct {
	ID        string       `json:"id" bson:"_id"`
	UserID    string       `json:"userId" bson:"user_id"`
	User      *UserSummary `json:"user,omitempty" bson:"-"`
	Rating    int          `json:"rating" bson:"rating"`
	Comment   string       `json:"comment" bson:"comment"`
	CreatedAt time.Time    `json:"createdAt" bson:"created_at"`
}
