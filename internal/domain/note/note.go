package note

import "time"

type Note struct {
	ID        int        `json:"id" db:"id"`
	Title     string     `json:"title" db:"title"`
	Content   string     `json:"content" db:"content"`
	CreatedAt *time.Time `json:"createdAt,omitempty" db:"created_at"` // assigned by the database, never updated
}

type CreateNoteRequest struct {
	Title   string `json:"title" binding:"required,max=200"`
	Content string `json:"content" binding:"omitempty,max=20000"`
}

// a full update payload: title and content are overwritten, createdAt is left alone.
type UpdateNoteRequest struct {
	Title   string `json:"title" binding:"required,max=200"`
	Content string `json:"content" binding:"omitempty,max=20000"`
}
