package models

// Account is the replicated profile record of an organizer user: display
// name and running balance. Authentication credentials live on [User] and are
// never synchronized; Account carries only the fields the offline client
// edits and merges.
type Account struct {
	SyncMeta

	Email    string  `json:"email" validate:"omitempty,email"`
	Username string  `json:"username" validate:"required,max=32"`
	Balance  float64 `json:"balance"`
}

// EntityAccount is the entity label used for sync cursors and log fields.
const EntityAccount = "account"
