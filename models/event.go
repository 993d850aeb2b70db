package models

// Event is a calendar entry. It references its category and reminder by
// server identifier only; a zero value means "no reference". Date, StartTime
// and EndTime are epoch milliseconds.
type Event struct {
	SyncMeta

	CategoryID int64  `json:"category_id"`
	ReminderID int64  `json:"reminder_id"`
	Title      string `json:"title" validate:"required,max=255"`
	Descr      string `json:"description"`
	Date       int64  `json:"date" validate:"required,gt=0"`
	StartTime  int64  `json:"start_time"`
	EndTime    int64  `json:"end_time"`
	Priority   int    `json:"priority" validate:"gte=0,lte=3"`
	Location   string `json:"location"`
}

// EntityEvent is the entity label used for sync cursors and log fields.
const EntityEvent = "event"
