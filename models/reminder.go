package models

// Reminder frequency codes. Zero means the reminder fires once.
const (
	FrequencyOnce    = 0
	FrequencyDaily   = 1
	FrequencyWeekly  = 2
	FrequencyMonthly = 3
)

// Reminder statuses.
const (
	ReminderDisabled = 0
	ReminderActive   = 1
)

// Reminder is a scheduled notification. ReminderTime is an epoch-millisecond
// timestamp, consistent with every other timestamp on the wire.
type Reminder struct {
	SyncMeta

	ReminderTime int64  `json:"reminder_time" validate:"required,gt=0"`
	Frequency    int    `json:"frequency" validate:"gte=0,lte=3"`
	Status       int    `json:"status" validate:"gte=0,lte=1"`
	Message      string `json:"message"`
}

// EntityReminder is the entity label used for sync cursors and log fields.
const EntityReminder = "reminder"
