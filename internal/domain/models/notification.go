package models

import "time"

// Notification is one entry of the dashboard notification center.
type Notification struct {
	Kind      string    `bson:"kind" json:"kind"`
	Severity  Severity  `bson:"severity" json:"severity"`
	Title     string    `bson:"title" json:"title"`
	Message   string    `bson:"message" json:"message"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}
