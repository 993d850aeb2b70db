package models

// Category groups events and reminders. Color and icon are client-side
// presentation hints stored verbatim.
type Category struct {
	SyncMeta

	Name        string `json:"name" validate:"required,max=255"`
	Description string `json:"description"`
	Color       string `json:"color" validate:"max=16"`
	Icon        string `json:"icon" validate:"max=64"`
}

// EntityCategory is the entity label used for sync cursors and log fields.
const EntityCategory = "category"
