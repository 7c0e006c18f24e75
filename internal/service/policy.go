package service

import (
	"github.com/google/uuid"

	"github.com/maaz-official/Recipe-App-Backend/internal/models"
)

// CanModify reports whether the acting user may mutate a resource owned by
// ownerID: the owner themselves, or any admin.
func CanModify(actor *models.User, ownerID uuid.UUID) bool {
	if actor == nil {
		return false
	}
	return actor.ID == ownerID || actor.IsAdmin()
}
