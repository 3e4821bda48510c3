package store

// Comment is one ingested social-media comment. Sentiment is empty until
// the comment has been classified.
type Comment struct {
	ID        int32
	UID       string
	BrandID   int32
	Text      string
	Sentiment string
	CreatedTs int64
}

// FindComment filters comment listing.
type FindComment struct {
	ID      *int32
	UID     *string
	BrandID *int32
}

// UpdateCommentSentiment sets the sentiment label of one comment.
type UpdateCommentSentiment struct {
	ID        int32
	Sentiment string
}

// DeleteComment removes one comment by UID.
type DeleteComment struct {
	UID string
}
