package store

// Keyword is one canonical keyword of a brand's latest pipeline run.
type Keyword struct {
	ID        int32
	BrandID   int32
	Phrase    string
	CreatedTs int64
}

// FindKeyword filters keyword listing.
type FindKeyword struct {
	BrandID *int32
}
