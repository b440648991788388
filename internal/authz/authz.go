package authz

import (
	"github.com/pedidosapp/order-api/internal/httperr"
	"github.com/pedidosapp/order-api/internal/models"
)

// CanAccess reports whether the user may read or mutate a resource
// owned by ownerID. Admins override the owner match.
func CanAccess(user *models.User, ownerID uint) bool {
	if user == nil {
		return false
	}
	return user.Admin || user.ID == ownerID
}

// RequireOwnerOrAdmin converts a failed CanAccess into a business error.
func RequireOwnerOrAdmin(user *models.User, ownerID uint) error {
	if !CanAccess(user, ownerID) {
		return httperr.ErrBusiness("not_allowed")
	}
	return nil
}

func RequireAdmin(user *models.User) error {
	if user == nil || !user.Admin {
		return httperr.ErrBusiness("admin_only")
	}
	return nil
}
