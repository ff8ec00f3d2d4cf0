package controllers

import (
	"context"
	"net/http"
	"strings"

	"github.com/aquaplan/aquatutor-backend/api/middleware"
	"github.com/aquaplan/aquatutor-backend/api/responses"
	"github.com/aquaplan/aquatutor-backend/api/validators"
	"github.com/aquaplan/aquatutor-backend/internal/applications"
	"github.com/aquaplan/aquatutor-backend/internal/signatures"
	"github.com/aquaplan/aquatutor-backend/pkg/enums"
	pkgerrors "github.com/aquaplan/aquatutor-backend/pkg/errors"
	"github.com/aquaplan/aquatutor-backend/pkg/logger"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// ApplicationSubmitRequest is the full application form payload.
type ApplicationSubmitRequest struct {
	CompanyName        string `json:"company_name" validate:"required"`
	PostalCode         string `json:"postal_code"`
	Prefecture         string `json:"prefecture" validate:"required"`
	City               string `json:"city" validate:"required"`
	SubArea            string `json:"sub_area" validate:"required"`
	BuildingRoom       string `json:"building_room"`
	RepresentativeName string `json:"representative_name" validate:"required"`
	ContactName        string `json:"contact_name" validate:"required"`
	ContactPhone       string `json:"contact_phone" validate:"required"`
	ContactEmail       string `json:"contact_email" validate:"required,email"`
	InitialFee         string `json:"initial_fee" validate:"required"`
	MonthlyFee         string `json:"monthly_fee" validate:"required"`
	ExcessFee          string `json:"excess_fee" validate:"required"`
	OptionFee          string `json:"option_fee" validate:"required"`
	PaymentMethod      string `json:"payment_method"`
	Notes              string `json:"notes"`
}

// SignatureSaveRequest carries the drawn signature raster.
type SignatureSaveRequest struct {
	SignatureData string `json:"signature_data" validate:"required"`
	SignedBy      string `json:"signed_by" validate:"required"`
}

// ApplicationSubmit inserts the application and reports the saved and
// notified outcomes independently.
func ApplicationSubmit(svc *applications.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "applications service unavailable"))
			return
		}

		var body ApplicationSubmitRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		result, err := svc.Submit(ctx, applications.SubmitInput{
			SignedInEmail:      middleware.EmailFromContext(ctx),
			CompanyName:        body.CompanyName,
			PostalCode:         body.PostalCode,
			Prefecture:         body.Prefecture,
			City:               body.City,
			SubArea:            body.SubArea,
			BuildingRoom:       body.BuildingRoom,
			RepresentativeName: body.RepresentativeName,
			ContactName:        body.ContactName,
			ContactPhone:       body.ContactPhone,
			ContactEmail:       body.ContactEmail,
			InitialFee:         body.InitialFee,
			MonthlyFee:         body.MonthlyFee,
			ExcessFee:          body.ExcessFee,
			OptionFee:          body.OptionFee,
			PaymentMethod:      body.PaymentMethod,
			Notes:              body.Notes,
		})
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, map[string]any{
			"application": result.Application,
			"saved":       result.Saved,
			"notified":    result.Notified,
		})
	}
}

// ApplicationListOwn returns the signed-in applicant's submissions.
func ApplicationListOwn(svc *applications.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "applications service unavailable"))
			return
		}

		applicantID, err := uuid.Parse(middleware.UserIDFromContext(ctx))
		if err != nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing identity"))
			return
		}

		params, err := listParamsFromQuery(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		apps, next, err := svc.ListByApplicant(ctx, applicantID, params)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, listPayload(apps, next))
	}
}

// ApplicationGet loads one application, for the dashboard and the sign page.
func ApplicationGet(svc *applications.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "applications service unavailable"))
			return
		}

		id, err := applicationIDFromPath(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		viewer, err := viewerFromContext(ctx)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		app, err := svc.Get(ctx, id, viewer)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, app)
	}
}

// ApplicationSign stores a drawn signature and moves the row to approved.
func ApplicationSign(svc *signatures.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "signatures service unavailable"))
			return
		}

		id, err := applicationIDFromPath(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		var body SignatureSaveRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		viewer, err := viewerFromContext(ctx)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		result, err := svc.Save(ctx, id, body.SignatureData, body.SignedBy, viewer)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]any{
			"application": result.Application,
			"signature":   result.Signature,
			"saved":       result.Saved,
			"notified":    result.Notified,
		})
	}
}

// viewerFromContext builds the access scope for single-application reads
// and signing from the authenticated claims.
func viewerFromContext(ctx context.Context) (applications.Viewer, error) {
	profileID, err := uuid.Parse(middleware.UserIDFromContext(ctx))
	if err != nil {
		return applications.Viewer{}, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing identity")
	}
	return applications.Viewer{
		ProfileID: profileID,
		Admin:     middleware.RoleFromContext(ctx) == string(enums.UserRoleAdmin),
	}, nil
}

func applicationIDFromPath(r *http.Request) (uuid.UUID, error) {
	raw := strings.TrimSpace(chi.URLParam(r, "id"))
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid application id")
	}
	return id, nil
}
