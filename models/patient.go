package models

import "time"

// Patient is the requesting party of an appointment.
type Patient struct {
	ID          string    `bson:"id" json:"id"`
	Name        string    `bson:"name" json:"name"`
	Email       string    `bson:"email" json:"email,omitempty"`
	Username    string    `bson:"username" json:"username,omitempty"`
	Gender      string    `bson:"gender" json:"gender,omitempty"`
	DateOfBirth time.Time `bson:"dateOfBirth" json:"dateOfBirth,omitzero"`
	FCMToken    string    `bson:"fcmToken" json:"-"`
	CreatedAt   time.Time `bson:"createdAt" json:"createdAt,omitzero"`
	UpdatedAt   time.Time `bson:"updatedAt" json:"updatedAt,omitzero"`
}
