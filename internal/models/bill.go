package models

// Bill is a stored session: a BillState plus the bookkeeping the store adds.
// Bills live only as long as the process; they are not kept across restarts.
type Bill struct {
	// ID is the unique identifier for the bill (UUID format).
	ID string `json:"id"`

	// Title is a human-readable label.
	// Auto-generated from participant names when left empty.
	Title string `json:"title"`

	// AutoTitle is set when Title was generated; such titles follow the
	// roster as it is edited.
	AutoTitle bool `json:"auto_title"`

	BillState

	// CreatedAt is the Unix timestamp when the bill was created.
	CreatedAt int64 `json:"created_at"`

	// UpdatedAt is the Unix timestamp of the last edit.
	UpdatedAt int64 `json:"updated_at"`
}
