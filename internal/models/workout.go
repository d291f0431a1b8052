package models

import "time"

type Workout struct {
	ID        string     `json:"id"`
	UserID    string     `json:"userId"`
	Name      string     `json:"name"`
	Type      string     `json:"type"`
	Duration  int        `json:"duration"`
	Calories  *int       `json:"calories"`
	Notes     string     `json:"notes"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt *time.Time `json:"updatedAt,omitempty"`
}

type WorkoutStats struct {
	TotalWorkouts   int            `json:"totalWorkouts"`
	TotalDuration   int            `json:"totalDuration"`
	TotalCalories   int            `json:"totalCalories"`
	AverageDuration float64        `json:"averageDuration"`
	WorkoutsByType  map[string]int `json:"workoutsByType"`
	WeeklyStats     []WeeklyStat   `json:"weeklyStats"`
}

type WeeklyStat struct {
	Week     string `json:"week"`
	Count    int    `json:"count"`
	Duration int    `json:"duration"`
}
