package model

import "time"

// PushSubscription holds a browser push subscription used for
// maintenance-due reminders. An empty Department subscribes to every asset.
type PushSubscription struct {
	Endpoint   string    `gorm:"primaryKey"`
	P256DH     string    `gorm:"column:p256dh;not null"`
	Auth       string    `gorm:"not null"`
	Department string    `gorm:"size:128"`
	CreatedAt  time.Time `gorm:"not null"`
}
