package repository

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// forUpdate adds a SELECT ... FOR UPDATE row lock. SQLite (the test dialect)
// has no row locks and rejects the syntax; its single-writer model serializes
// the same transactions anyway.
func forUpdate(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "sqlite" {
		return tx
	}
	return tx.Clauses(clause.Locking{Strength: "UPDATE"})
}
