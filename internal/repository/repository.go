package repository

import (
	"errors"

	"gorm.io/gorm"
)

// ErrStateChanged is returned by guarded updates when the row exists but its
// status no longer matches the state the caller decided on. Services surface
// this as a CONFLICT.
var ErrStateChanged = errors.New("record state changed since read")

// ErrInsufficientStock is returned when a stock-out move exceeds the locked
// on-hand quantity.
var ErrInsufficientStock = errors.New("insufficient stock remaining")

// guardedUpdate runs an update-with-previous-state-check: the WHERE clause
// re-checks the expected status inside the same transaction, so a concurrent
// transition loses cleanly instead of double-applying.
func guardedUpdate(tx *gorm.DB, dest interface{}, id interface{}, statusColumn string, expected interface{}, updates map[string]interface{}) error {
	res := tx.Model(dest).
		Where("id = ? AND "+statusColumn+" = ?", id, expected).
		Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		// Distinguish a missing row from a lost race
		var count int64
		if err := tx.Model(dest).Where("id = ?", id).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return gorm.ErrRecordNotFound
		}
		return ErrStateChanged
	}
	return nil
}
