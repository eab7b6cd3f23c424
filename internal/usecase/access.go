package usecase

import (
	domainErrors "github.com/polkiloo/delivery/internal/domain/errors"
	"github.com/polkiloo/delivery/internal/domain/model"
)

// AuthorizeResourceAccess permits admins and the owner of the resource.
func AuthorizeResourceAccess(caller *model.User, ownerID int64) error {
	if caller == nil {
		return domainErrors.ErrUnauthorized
	}
	if caller.Admin || caller.ID == ownerID {
		return nil
	}
	return domainErrors.ErrForbidden
}

// AuthorizeAdminAction permits admins only.
func AuthorizeAdminAction(caller *model.User) error {
	if caller == nil {
		return domainErrors.ErrUnauthorized
	}
	if caller.Admin {
		return nil
	}
	return domainErrors.ErrForbidden
}
