package applications

import (
	"github.com/aquaplan/aquatutor-backend/pkg/db/models"
	"github.com/google/uuid"
)

// Viewer is the authenticated identity behind a read or signing request.
// Admins see every application; applicants only their own rows.
type Viewer struct {
	ProfileID uuid.UUID
	Admin     bool
}

// CanAccess reports whether the viewer may read or sign the application.
func (v Viewer) CanAccess(app *models.Application) bool {
	if app == nil {
		return false
	}
	return v.Admin || app.ApplicantID == v.ProfileID
}
