package models

import "time"

type GroupClass struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Description    string    `json:"description"`
	InstructorName string    `json:"instructorName"`
	Category       string    `json:"category"`
	Capacity       int       `json:"capacity"`
	BookedCount    int       `json:"bookedCount"`
	Date           time.Time `json:"date"`
	StartTime      string    `json:"startTime"`
	EndTime        string    `json:"endTime"`
	Location       string    `json:"location"`
	ImageURL       *string   `json:"imageUrl,omitempty"`
}
