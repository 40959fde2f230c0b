package models

import "time"

// AdminSession backs a signed session cookie. There is a single admin, so sessions carry no user.
type AdminSession struct {
	Base
	IP        string     `json:"ip"`
	UA        string     `json:"ua"         gorm:"type:text"`
	ExpiresAt time.Time  `json:"expires_at" gorm:"index;not null"`
	RevokedAt *time.Time `json:"revoked_at" gorm:"index"`
}

func (AdminSession) TableName() string { return "admin_sessions" }
