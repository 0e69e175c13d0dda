package model

import "time"

const EntitlementStatusPaid = "paid"

// Entitlement is the persisted paid record for one user. A row exists for a
// user id if and only if that user completed one verified payment. Rows are
// written once and never deleted.
type Entitlement struct {
	UserID      string `gorm:"primaryKey;size:64;not null"`
	Email       string `gorm:"size:255"`
	DisplayName string `gorm:"size:255"`
	AvatarURL   string `gorm:"size:512"`
	PaymentID   string `gorm:"size:64;not null"`
	OrderID     string `gorm:"size:64;index;not null"`
	Amount      int64  `gorm:"not null"` // minor currency unit, server-authoritative
	Currency    string `gorm:"size:8;not null"`
	Status      string `gorm:"size:16;index;not null"` // "paid"
	PaidAt      time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (Entitlement) TableName() string {
	return "paid_users"
}

func (e *Entitlement) IsPaid() bool {
	return e != nil && e.Status == EntitlementStatusPaid
}
