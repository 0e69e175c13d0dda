package repository

import (
	"context"
	"errors"
	"razorpay-checkout-demo/internal/model"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type EntitlementRepository interface {
	// Upsert writes the paid record for a user. Repeated writes for the same
	// user id must not error; the latest record wins.
	Upsert(ctx context.Context, entitlement *model.Entitlement) error
	// Find returns (nil, nil) when no record exists. Only database faults error.
	Find(ctx context.Context, userID string) (*model.Entitlement, error)
}

type entitlementRepoImpl struct {
	db *gorm.DB
}

func NewEntitlementRepository(db *gorm.DB) EntitlementRepository {
	return &entitlementRepoImpl{
		db: db,
	}
}

func (r *entitlementRepoImpl) Upsert(ctx context.Context, entitlement *model.Entitlement) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"email":        entitlement.Email,
			"display_name": entitlement.DisplayName,
			"avatar_url":   entitlement.AvatarURL,
			"payment_id":   entitlement.PaymentID,
			"order_id":     entitlement.OrderID,
			"amount":       entitlement.Amount,
			"currency":     entitlement.Currency,
			"status":       entitlement.Status,
			"paid_at":      entitlement.PaidAt,
			"updated_at":   time.Now(),
		}),
	}).Create(entitlement).Error
}

func (r *entitlementRepoImpl) Find(ctx context.Context, userID string) (*model.Entitlement, error) {
	var entitlement model.Entitlement
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		First(&entitlement).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &entitlement, nil
}
