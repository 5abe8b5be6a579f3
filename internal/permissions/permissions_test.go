package permissions_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"kritika/internal/models"
	"kritika/internal/permissions"
)

var (
	anon      *models.User
	regular   = &models.User{ID: "u1", Role: models.RoleUser}
	moderator = &models.User{ID: "m1", Role: models.RoleModerator}
	admin     = &models.User{ID: "a1", Role: models.RoleAdmin}
)

func TestCanAccess_Catalog(t *testing.T) {
	tests := []struct {
		name   string
		user   *models.User
		method string
		want   bool
	}{
		{"anonymous read", anon, http.MethodGet, true},
		{"anonymous write", anon, http.MethodPost, false},
		{"user read", regular, http.MethodGet, true},
		{"user write", regular, http.MethodPost, false},
		{"moderator write", moderator, http.MethodDelete, false},
		{"admin write", admin, http.MethodPost, true},
		{"admin delete", admin, http.MethodDelete, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := permissions.CanAccess(tt.user, tt.method, permissions.ResourceCatalog)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCanAccess_Review(t *testing.T) {
	assert.True(t, permissions.CanAccess(anon, http.MethodGet, permissions.ResourceReview))
	assert.False(t, permissions.CanAccess(anon, http.MethodPost, permissions.ResourceReview))
	assert.True(t, permissions.CanAccess(regular, http.MethodPost, permissions.ResourceReview))
	assert.True(t, permissions.CanAccess(moderator, http.MethodPatch, permissions.ResourceReview))
	assert.True(t, permissions.CanAccess(admin, http.MethodDelete, permissions.ResourceReview))
}

func TestCanAccess_UserAdmin(t *testing.T) {
	assert.False(t, permissions.CanAccess(anon, http.MethodGet, permissions.ResourceUserAdmin))
	assert.False(t, permissions.CanAccess(regular, http.MethodGet, permissions.ResourceUserAdmin))
	assert.False(t, permissions.CanAccess(moderator, http.MethodGet, permissions.ResourceUserAdmin))
	assert.True(t, permissions.CanAccess(admin, http.MethodGet, permissions.ResourceUserAdmin))
	assert.True(t, permissions.CanAccess(admin, http.MethodDelete, permissions.ResourceUserAdmin))
}

func TestCanAccess_Self(t *testing.T) {
	assert.False(t, permissions.CanAccess(anon, http.MethodGet, permissions.ResourceSelf))
	assert.True(t, permissions.CanAccess(regular, http.MethodGet, permissions.ResourceSelf))
	assert.True(t, permissions.CanAccess(regular, http.MethodPatch, permissions.ResourceSelf))
}

func TestCanMutateObject(t *testing.T) {
	other := &models.User{ID: "u2", Role: models.RoleUser}

	// Safe methods are always allowed, even anonymously.
	assert.True(t, permissions.CanMutateObject(anon, http.MethodGet, regular.ID))

	// Unsafe methods: author, moderator and admin only.
	assert.True(t, permissions.CanMutateObject(regular, http.MethodPatch, regular.ID))
	assert.False(t, permissions.CanMutateObject(other, http.MethodPatch, regular.ID))
	assert.True(t, permissions.CanMutateObject(moderator, http.MethodDelete, regular.ID))
	assert.True(t, permissions.CanMutateObject(admin, http.MethodDelete, regular.ID))
	assert.False(t, permissions.CanMutateObject(anon, http.MethodDelete, regular.ID))
}
