package controllers

import (
	"net/http"
	"strings"

	"github.com/aquaplan/aquatutor-backend/api/responses"
	"github.com/aquaplan/aquatutor-backend/api/validators"
	"github.com/aquaplan/aquatutor-backend/internal/applications"
	"github.com/aquaplan/aquatutor-backend/pkg/db/models"
	"github.com/aquaplan/aquatutor-backend/pkg/enums"
	pkgerrors "github.com/aquaplan/aquatutor-backend/pkg/errors"
	"github.com/aquaplan/aquatutor-backend/pkg/logger"
	"github.com/aquaplan/aquatutor-backend/pkg/pagination"
)

// SendContractRequest names the address the signature request goes to.
type SendContractRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// AdminApplicationList returns all applications, newest first.
func AdminApplicationList(svc *applications.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "applications service unavailable"))
			return
		}

		params, err := listParamsFromQuery(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		apps, next, err := svc.ListAll(ctx, params)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, listPayload(apps, next))
	}
}

// AdminApplicationSendContract moves the row under review and mails the
// signature request link. Safe to call again to re-send the mail.
func AdminApplicationSendContract(svc *applications.Service, logg *logger.Logger) http.HandlerFunc {
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

		var body SendContractRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		result, err := svc.SendContract(ctx, id, body.Email)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]any{
			"application": result.Application,
			"saved":       result.Saved,
			"notified":    result.Notified,
		})
	}
}

// AdminApplicationApprove marks an application approved.
func AdminApplicationApprove(svc *applications.Service, logg *logger.Logger) http.HandlerFunc {
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

		app, err := svc.Approve(ctx, id)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, app)
	}
}

// AdminApplicationReject marks an application rejected.
func AdminApplicationReject(svc *applications.Service, logg *logger.Logger) http.HandlerFunc {
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

		app, err := svc.Reject(ctx, id)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, app)
	}
}

func listParamsFromQuery(r *http.Request) (applications.ListParams, error) {
	limit, err := validators.ParseQueryInt(r, "limit", 20, 1, 100)
	if err != nil {
		return applications.ListParams{}, err
	}

	params := applications.ListParams{
		Limit:  limit,
		Cursor: strings.TrimSpace(r.URL.Query().Get("cursor")),
	}

	if raw := strings.TrimSpace(r.URL.Query().Get("status")); raw != "" {
		status, err := enums.ParseApplicationStatus(raw)
		if err != nil {
			return applications.ListParams{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid status filter")
		}
		params.Status = &status
	}
	return params, nil
}

func listPayload(apps []models.Application, next *pagination.Cursor) map[string]any {
	payload := map[string]any{"applications": apps}
	if next != nil {
		payload["next_cursor"] = pagination.EncodeCursor(*next)
	}
	return payload
}
