package auth

import (
	"context"
	"strings"

	"github.com/aquaplan/aquatutor-backend/internal/profiles"
	"github.com/aquaplan/aquatutor-backend/pkg/config"
	"github.com/aquaplan/aquatutor-backend/pkg/db"
	"github.com/aquaplan/aquatutor-backend/pkg/db/models"
	pkgerrors "github.com/aquaplan/aquatutor-backend/pkg/errors"
	"github.com/aquaplan/aquatutor-backend/pkg/security"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AdminRegisterRequest contains the credentials for the dev-only admin bootstrap flow.
type AdminRegisterRequest struct {
	Email    string  `json:"email" validate:"required,email"`
	Password string  `json:"password" validate:"required"`
	FullName *string `json:"full_name,omitempty"`
}

// AdminRegisterService handles creating dev admin accounts.
type AdminRegisterService interface {
	Register(ctx context.Context, req AdminRegisterRequest) (*profiles.ProfileDTO, error)
}

// AdminRegisterServiceParams names the dependencies for the admin register flow.
type AdminRegisterServiceParams struct {
	DB             *db.Client
	PasswordConfig config.PasswordConfig
}

type adminRegisterService struct {
	db          *db.Client
	passwordCfg config.PasswordConfig
}

// NewAdminRegisterService builds a dev admin registration service.
func NewAdminRegisterService(params AdminRegisterServiceParams) (AdminRegisterService, error) {
	if params.DB == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "database client required")
	}
	return &adminRegisterService{
		db:          params.DB,
		passwordCfg: params.PasswordConfig,
	}, nil
}

func (s *adminRegisterService) Register(ctx context.Context, req AdminRegisterRequest) (*profiles.ProfileDTO, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "email is required")
	}
	if len(req.Password) < minPasswordLength {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "password must be at least 8 characters")
	}

	passwordHash, err := security.HashPassword(req.Password, s.passwordCfg)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hash password")
	}

	var created *models.Profile
	err = s.db.WithTx(ctx, func(tx *gorm.DB) error {
		repo := profiles.NewRepository(tx)

		existing, err := repo.FindByEmail(ctx, email)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "check profile email")
		}
		if existing != nil {
			return pkgerrors.New(pkgerrors.CodeConflict, "email already registered")
		}

		profile := &models.Profile{
			ID:           uuid.New(),
			Email:        email,
			PasswordHash: passwordHash,
			FullName:     req.FullName,
			IsAdmin:      true,
			IsActive:     true,
		}
		if err := repo.Create(ctx, profile); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create admin profile")
		}
		created = profile
		return nil
	})
	if err != nil {
		return nil, err
	}
	return profiles.FromModel(created), nil
}
