package models

import "time"

const (
	EngagementScroll     = "scroll"
	EngagementVisibility = "visibility"
	EngagementTime       = "time"
)

type PageView struct {
	Slug      string    `json:"slug"`
	Path      string    `json:"path"`
	Referrer  string    `json:"referrer,omitempty"`
	UserAgent string    `json:"-"`
	CreatedAt time.Time `json:"createdAt"`
}

// EngagementEvent carries a scroll depth percentage, a visibility flag
// (1 visible, 0 hidden) or seconds on page, depending on Event.
type EngagementEvent struct {
	Slug      string    `json:"slug"`
	Event     string    `json:"event"`
	Value     int       `json:"value"`
	CreatedAt time.Time `json:"createdAt"`
}
