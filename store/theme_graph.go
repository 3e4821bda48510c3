package store

// ThemeNode is one persisted keyword node of a brand's theme graph.
type ThemeNode struct {
	ID        int32
	BrandID   int32
	Keyword   string
	Weight    int
	Sentiment string
}

// ThemeLink is one persisted edge of a brand's theme graph.
type ThemeLink struct {
	ID      int32
	BrandID int32
	Source  string
	Target  string
	Value   float64
}

// FindThemeGraph selects a brand's persisted graph.
type FindThemeGraph struct {
	BrandID int32
}

// ReplaceThemeGraph replaces a brand's graph wholesale. Drivers apply the
// clear and the insert inside one transaction so a failed replace leaves
// the previous graph intact.
type ReplaceThemeGraph struct {
	BrandID int32
	Nodes   []*ThemeNode
	Links   []*ThemeLink
}
