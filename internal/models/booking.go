package models

import "time"

const (
	BookingTypePT         = "pt"
	BookingTypeGroupClass = "group-class"

	BookingStatusPending   = "pending"
	BookingStatusConfirmed = "confirmed"
	BookingStatusCancelled = "cancelled"
	BookingStatusCompleted = "completed"
)

type Booking struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	ClassID   *string   `json:"classId,omitempty"`
	Type      string    `json:"type"`
	Date      time.Time `json:"date"`
	StartTime string    `json:"startTime"`
	EndTime   string    `json:"endTime"`
	Status    string    `json:"status"`
	Notes     *string   `json:"notes,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
