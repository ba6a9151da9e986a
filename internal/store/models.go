package store

import "time"

// Reminder kinds. A "before" reminder precedes the lecture start; the
// after kinds trail the lecture end.
const (
	KindBefore   = "before"
	KindReview   = "review"
	KindHomework = "homework"
	KindStudy    = "study"
)

// Reminder is one registered one-shot notification. The registry keeps
// every row it is given; de-duplication is the caller's concern.
type Reminder struct {
	ID        string
	LectureID string
	FireAt    time.Time // UTC
	Kind      string
	Title     string
	Body      string
}
