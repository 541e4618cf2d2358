package auth

import (
	"github.com/trungle/unidocs/internal/app/models"
	"github.com/trungle/unidocs/internal/pkg/apperrors"
)

// Actor is the authenticated principal a policy decision is made for
type Actor struct {
	UserID int64
	Role   models.RoleType
}

// PolicyService makes authorization decisions. Every mutation that is
// restricted to an owner or an admin goes through one of these checks instead
// of comparing IDs inline at the call site.
type PolicyService struct{}

// NewPolicyService creates a new PolicyService
func NewPolicyService() *PolicyService {
	return &PolicyService{}
}

func (p *PolicyService) isOwnerOrAdmin(actor Actor, ownerID int64) bool {
	return actor.Role == models.RoleAdmin || actor.UserID == ownerID
}

// CanModifyDocument reports whether the actor may edit or delete the document.
// Allowed for the uploader and for admins.
func (p *PolicyService) CanModifyDocument(actor Actor, doc *models.Document) error {
	if doc == nil {
		return apperrors.ErrDocumentNotFound
	}
	if !p.isOwnerOrAdmin(actor, doc.UserID) {
		return apperrors.NewForbiddenError("You do not have permission to modify this document")
	}
	return nil
}

// CanChangeDocumentStatus reports whether the actor may change a document's
// review status. Restricted to admins.
func (p *PolicyService) CanChangeDocumentStatus(actor Actor) error {
	if actor.Role != models.RoleAdmin {
		return apperrors.NewForbiddenError("Only administrators can change document status")
	}
	return nil
}

// CanDeleteRating reports whether the actor may delete the rating. Allowed for
// the rating's author and for admins.
func (p *PolicyService) CanDeleteRating(actor Actor, rating *models.Rating) error {
	if rating == nil {
		return apperrors.ErrRatingNotFound
	}
	if !p.isOwnerOrAdmin(actor, rating.UserID) {
		return apperrors.NewForbiddenError("You do not have permission to delete this rating")
	}
	return nil
}

// CanManageCatalog reports whether the actor may create universities and
// subjects. Restricted to admins.
func (p *PolicyService) CanManageCatalog(actor Actor) error {
	if actor.Role != models.RoleAdmin {
		return apperrors.NewForbiddenError("Only administrators can manage the catalog")
	}
	return nil
}
