package controllers

import (
	"net/http"

	"github.com/aquaplan/aquatutor-backend/api/responses"
	"github.com/aquaplan/aquatutor-backend/api/validators"
	"github.com/aquaplan/aquatutor-backend/internal/inquiries"
	pkgerrors "github.com/aquaplan/aquatutor-backend/pkg/errors"
	"github.com/aquaplan/aquatutor-backend/pkg/logger"
)

// InquirySubmitRequest is the public contact-form payload.
type InquirySubmitRequest struct {
	Type               []string `json:"type" validate:"required,min=1"`
	CompanyName        string   `json:"company_name" validate:"required"`
	RepresentativeName string   `json:"representative_name" validate:"required"`
	Email              string   `json:"email" validate:"required,email"`
	Phone              string   `json:"phone"`
	Message            string   `json:"message" validate:"required"`
}

// InquirySubmit stores a contact-form inquiry and mails both parties.
func InquirySubmit(svc *inquiries.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "inquiries service unavailable"))
			return
		}

		var body InquirySubmitRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		result, err := svc.Submit(ctx, inquiries.SubmitInput{
			Types:              body.Type,
			CompanyName:        validators.SanitizeString(body.CompanyName, 200),
			RepresentativeName: validators.SanitizeString(body.RepresentativeName, 100),
			Email:              body.Email,
			Phone:              validators.SanitizeString(body.Phone, 30),
			Message:            validators.SanitizeString(body.Message, 4000),
		})
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, map[string]any{
			"inquiry":  result.Inquiry,
			"saved":    result.Saved,
			"notified": result.Notified,
		})
	}
}

// AdminInquiryList returns the newest inquiries for the console.
func AdminInquiryList(svc *inquiries.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "inquiries service unavailable"))
			return
		}

		limit, err := validators.ParseQueryInt(r, "limit", 50, 1, 100)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		rows, err := svc.List(ctx, limit)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]any{"inquiries": rows})
	}
}
