package model

import "time"

// User represents a dashboard user. Role is free text (analyst, director, ...).
type User struct {
	ID        uint       `json:"UserID" gorm:"primaryKey"`
	Name      string     `json:"Name" gorm:"size:255;not null;index"`
	Email     string     `json:"Email" gorm:"size:255;not null"`
	Role      string     `json:"Role" gorm:"size:50"`
	LastLogin *time.Time `json:"lastLogin"`
}

// UserActivity is an append-only entry in a user's activity log.
type UserActivity struct {
	ID           uint      `json:"activityID" gorm:"primaryKey"`
	UserID       uint      `json:"userID" gorm:"not null;index"`
	ActivityType string    `json:"activityType" gorm:"size:50;not null"`
	Details      string    `json:"details" gorm:"type:text"`
	CreatedAt    time.Time `json:"createdAt" gorm:"index"`
}

// UserPatch lists the user fields a PUT may change.
var UserPatch = PatchSchema{
	{Key: "Name", Column: "name", Decode: DecodeStringWith("required,max=255")},
	{Key: "Email", Column: "email", Decode: DecodeStringWith("required,email")},
	{Key: "Role", Column: "role", Decode: DecodeStringWith("max=50")},
}
