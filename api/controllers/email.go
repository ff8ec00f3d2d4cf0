package controllers

import (
	"net/http"

	"github.com/aquaplan/aquatutor-backend/api/responses"
	"github.com/aquaplan/aquatutor-backend/api/validators"
	"github.com/aquaplan/aquatutor-backend/internal/notifications"
	pkgerrors "github.com/aquaplan/aquatutor-backend/pkg/errors"
	"github.com/aquaplan/aquatutor-backend/pkg/logger"
)

// AdminEmailRequest is the generic passthrough mail payload.
type AdminEmailRequest struct {
	To      []string `json:"to" validate:"required,min=1"`
	Subject string   `json:"subject" validate:"required"`
	HTML    string   `json:"html"`
	Text    string   `json:"text"`
}

// AdminEmailSend lets an operator send an ad hoc mail through the
// configured provider, with the same recipient normalization as the
// templated sends.
func AdminEmailSend(dispatcher *notifications.Dispatcher, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if dispatcher == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "mail dispatcher unavailable"))
			return
		}

		var body AdminEmailRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		if body.HTML == "" && body.Text == "" {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeValidation, "html or text body is required"))
			return
		}

		msg := notifications.Message{
			Template: notifications.TemplateAdHoc,
			Subject:  body.Subject,
			HTML:     body.HTML,
			Text:     body.Text,
		}
		if err := dispatcher.Dispatch(ctx, msg, body.To...); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]bool{"sent": true})
	}
}
