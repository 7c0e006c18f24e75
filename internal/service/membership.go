package service

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ToggleOutcome is the result of adding or removing a member from a
// set-valued relationship.
type ToggleOutcome int

const (
	Added ToggleOutcome = iota
	AlreadyPresent
	Removed
	NotPresent
)

func (o ToggleOutcome) String() string {
	switch o {
	case Added:
		return "added"
	case AlreadyPresent:
		return "already present"
	case Removed:
		return "removed"
	case NotPresent:
		return "not present"
	}
	return "unknown"
}

// addMembership inserts a join row unless an equal pair already exists.
// The insert relies on the table's composite unique index, so two racing
// requests cannot both count as Added.
func addMembership[T any](db *gorm.DB, row *T) (ToggleOutcome, error) {
	result := db.Clauses(clause.OnConflict{DoNothing: true}).Create(row)
	if result.Error != nil {
		return NotPresent, result.Error
	}
	if result.RowsAffected == 0 {
		return AlreadyPresent, nil
	}
	return Added, nil
}

// removeMembership deletes the join row matching cond, if any.
func removeMembership[T any](db *gorm.DB, cond *T) (ToggleOutcome, error) {
	result := db.Where(cond).Delete(new(T))
	if result.Error != nil {
		return NotPresent, result.Error
	}
	if result.RowsAffected == 0 {
		return NotPresent, nil
	}
	return Removed, nil
}
