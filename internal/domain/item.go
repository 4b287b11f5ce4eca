package domain

import "time"

// Attributes is one classification result: each field is a canonical
// vocabulary key or Unknown, never free text.
type Attributes struct {
	Category string
	Style    string
	Color    string
	Season   string
}

// UnknownAttributes is the fallback recorded when classification fails.
func UnknownAttributes() Attributes {
	return Attributes{Category: Unknown, Style: Unknown, Color: Unknown, Season: Unknown}
}

// Get returns the value for a dimension.
func (a Attributes) Get(d Dimension) string {
	switch d {
	case DimCategory:
		return a.Category
	case DimStyle:
		return a.Style
	case DimColor:
		return a.Color
	case DimSeason:
		return a.Season
	}
	return Unknown
}

// Set assigns the value for a dimension.
func (a *Attributes) Set(d Dimension, v string) {
	switch d {
	case DimCategory:
		a.Category = v
	case DimStyle:
		a.Style = v
	case DimColor:
		a.Color = v
	case DimSeason:
		a.Season = v
	}
}

// Item is one classified channel photo. FileUniqueID is the identity key;
// FileID is the handle used to resend the photo. Items are immutable once
// stored and removed only by the retention purge.
type Item struct {
	FileUniqueID   string
	FileID         string
	MessageID      *int64
	CapturedAt     time.Time
	Attributes     Attributes
	RawDescription string
	StoredAt       time.Time
}
