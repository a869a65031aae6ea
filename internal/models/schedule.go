package models

import (
	"time"
)

// Schedule is one record in the schedule database. ID is the backend's
// page/document id; Title is what users refer to it by.
type Schedule struct {
	ID        string    `firestore:"-" json:"id"`
	Title     string    `firestore:"title" json:"title"`
	Date      string    `firestore:"date" json:"date"` // YYYY-MM-DD
	Status    string    `firestore:"status" json:"status"`
	Archived  bool      `firestore:"archived" json:"archived"`
	CreatedAt time.Time `firestore:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `firestore:"updatedAt" json:"updatedAt"`
}
