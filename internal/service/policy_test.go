package service

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/maaz-official/Recipe-App-Backend/internal/models"
)

func TestCanModify(t *testing.T) {
	ownerID := uuid.New()
	owner := &models.User{ID: ownerID, Role: models.RoleUser}
	admin := &models.User{ID: uuid.New(), Role: models.RoleAdmin}
	other := &models.User{ID: uuid.New(), Role: models.RoleUser}

	assert.True(t, CanModify(owner, ownerID))
	assert.True(t, CanModify(admin, ownerID))
	assert.False(t, CanModify(other, ownerID))
	assert.False(t, CanModify(nil, ownerID))
}
