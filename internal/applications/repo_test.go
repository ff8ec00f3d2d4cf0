package applications

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/aquaplan/aquatutor-backend/pkg/db/models"
	"github.com/aquaplan/aquatutor-backend/pkg/enums"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupApplicationsTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	applications := `
CREATE TABLE IF NOT EXISTS applications (
  id TEXT PRIMARY KEY,
  contract_id TEXT,
  applicant_id TEXT NOT NULL,
  sales_rep_id TEXT,
  status TEXT NOT NULL DEFAULT 'submitted',
  company_name TEXT NOT NULL,
  postal_code TEXT,
  prefecture TEXT,
  city TEXT,
  sub_area TEXT,
  building_room TEXT,
  company_address TEXT NOT NULL,
  representative_name TEXT NOT NULL,
  contact_name TEXT NOT NULL,
  phone_number TEXT NOT NULL,
  contact_email TEXT NOT NULL,
  initial_fee TEXT NOT NULL,
  monthly_fee TEXT NOT NULL,
  excess_fee TEXT NOT NULL,
  option_fee TEXT NOT NULL,
  payment_method TEXT,
  notes TEXT,
  signature_image TEXT,
  version INTEGER NOT NULL DEFAULT 0,
  created_at DATETIME,
  updated_at DATETIME,
  submitted_at DATETIME,
  approved_at DATETIME
);`
	require.NoError(t, db.Exec(applications).Error)

	templates := `
CREATE TABLE IF NOT EXISTS contract_templates (
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  description TEXT,
  terms TEXT NOT NULL DEFAULT '',
  amount INTEGER NOT NULL DEFAULT 0,
  training_items TEXT,
  manual_count INTEGER NOT NULL DEFAULT 0,
  special_notes TEXT,
  is_active INTEGER NOT NULL DEFAULT 1,
  created_at DATETIME,
  updated_at DATETIME
);`
	require.NoError(t, db.Exec(templates).Error)
	return db
}

func createApplication(t *testing.T, db *gorm.DB, status enums.ApplicationStatus, created time.Time) *models.Application {
	t.Helper()

	app := &models.Application{
		ID:                 uuid.New(),
		ApplicantID:        uuid.New(),
		Status:             status,
		CompanyName:        "株式会社テスト",
		CompanyAddress:     "東京都千代田区丸の内1-1",
		RepresentativeName: "山田 太郎",
		ContactName:        "佐藤 花子",
		PhoneNumber:        "03-1234-5678",
		ContactEmail:       "keiri@example.jp",
		InitialFee:         "500000",
		MonthlyFee:         "100000",
		ExcessFee:          "5000",
		OptionFee:          "20000",
		CreatedAt:          created,
		UpdatedAt:          created,
	}
	require.NoError(t, db.Create(app).Error)
	return app
}

func TestTransitionAppliesGuardedUpdate(t *testing.T) {
	db := setupApplicationsTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	app := createApplication(t, db, enums.ApplicationStatusSubmitted, time.Now().UTC())

	moved, err := repo.Transition(ctx, app.ID, StatusTransition{
		To:   enums.ApplicationStatusUnderReview,
		From: []enums.ApplicationStatus{enums.ApplicationStatusSubmitted, enums.ApplicationStatusUnderReview},
	})
	require.NoError(t, err)
	require.NotNil(t, moved)
	assert.Equal(t, enums.ApplicationStatusUnderReview, moved.Status)
	assert.Equal(t, int64(1), moved.Version)
}

func TestTransitionLosesAgainstUnexpectedState(t *testing.T) {
	db := setupApplicationsTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	app := createApplication(t, db, enums.ApplicationStatusRejected, time.Now().UTC())

	moved, err := repo.Transition(ctx, app.ID, StatusTransition{
		To:              enums.ApplicationStatusApproved,
		From:            []enums.ApplicationStatus{enums.ApplicationStatusSubmitted, enums.ApplicationStatusUnderReview},
		StampApprovedAt: true,
	})
	require.NoError(t, err)
	assert.Nil(t, moved)

	reloaded, err := repo.FindByID(ctx, app.ID)
	require.NoError(t, err)
	require.NotNil(t, reloaded)
	assert.Equal(t, enums.ApplicationStatusRejected, reloaded.Status)
	assert.Equal(t, int64(0), reloaded.Version)
}

func TestTransitionStampsApprovedAtOnce(t *testing.T) {
	db := setupApplicationsTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	app := createApplication(t, db, enums.ApplicationStatusUnderReview, time.Now().UTC())

	first, err := repo.Transition(ctx, app.ID, StatusTransition{
		To:              enums.ApplicationStatusApproved,
		From:            []enums.ApplicationStatus{enums.ApplicationStatusUnderReview},
		StampApprovedAt: true,
	})
	require.NoError(t, err)
	require.NotNil(t, first)
	require.NotNil(t, first.ApprovedAt)

	// A later signature write over an already approved row must keep the
	// original approval timestamp.
	image := "data:image/png;base64,AAAA"
	second, err := repo.Transition(ctx, app.ID, StatusTransition{
		To:              enums.ApplicationStatusApproved,
		From:            []enums.ApplicationStatus{enums.ApplicationStatusApproved},
		StampApprovedAt: true,
		SignatureImage:  &image,
	})
	require.NoError(t, err)
	require.NotNil(t, second)
	require.NotNil(t, second.ApprovedAt)
	assert.True(t, second.ApprovedAt.Equal(*first.ApprovedAt))
	require.NotNil(t, second.SignatureImage)
	assert.Equal(t, image, *second.SignatureImage)
	assert.Equal(t, int64(2), second.Version)
}

func TestTransitionUnknownRow(t *testing.T) {
	db := setupApplicationsTestDB(t)
	repo := NewRepository(db)

	moved, err := repo.Transition(context.Background(), uuid.New(), StatusTransition{
		To:   enums.ApplicationStatusRejected,
		From: []enums.ApplicationStatus{enums.ApplicationStatusSubmitted},
	})
	require.NoError(t, err)
	assert.Nil(t, moved)
}

func TestListPaginatesNewestFirst(t *testing.T) {
	db := setupApplicationsTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	var ids []uuid.UUID
	for i := 0; i < 5; i++ {
		app := createApplication(t, db, enums.ApplicationStatusSubmitted, base.Add(time.Duration(i)*time.Minute))
		ids = append(ids, app.ID)
	}

	page, next, err := repo.List(ctx, ListQuery{Limit: 3})
	require.NoError(t, err)
	require.Len(t, page, 3)
	require.NotNil(t, next)
	assert.Equal(t, ids[4], page[0].ID)
	assert.Equal(t, ids[2], page[2].ID)

	rest, last, err := repo.List(ctx, ListQuery{Limit: 3, Cursor: next})
	require.NoError(t, err)
	require.Len(t, rest, 2)
	assert.Nil(t, last)
	assert.Equal(t, ids[1], rest[0].ID)
	assert.Equal(t, ids[0], rest[1].ID)
}

func TestListFiltersByApplicantAndStatus(t *testing.T) {
	db := setupApplicationsTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	now := time.Now().UTC()
	mine := createApplication(t, db, enums.ApplicationStatusSubmitted, now)
	createApplication(t, db, enums.ApplicationStatusSubmitted, now.Add(time.Minute))
	rejected := createApplication(t, db, enums.ApplicationStatusRejected, now.Add(2*time.Minute))

	page, _, err := repo.List(ctx, ListQuery{ApplicantID: &mine.ApplicantID, Limit: 10})
	require.NoError(t, err)
	require.Len(t, page, 1)
	assert.Equal(t, mine.ID, page[0].ID)

	status := enums.ApplicationStatusRejected
	page, _, err = repo.List(ctx, ListQuery{Status: &status, Limit: 10})
	require.NoError(t, err)
	require.Len(t, page, 1)
	assert.Equal(t, rejected.ID, page[0].ID)
}

func TestActiveTemplatePrefersNewestActive(t *testing.T) {
	db := setupApplicationsTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	tmpl, err := repo.ActiveTemplate(ctx)
	require.NoError(t, err)
	assert.Nil(t, tmpl)

	now := time.Now().UTC()
	old := &models.ContractTemplate{ID: uuid.New(), Name: "旧プラン", IsActive: true, CreatedAt: now.Add(-time.Hour)}
	retired := &models.ContractTemplate{ID: uuid.New(), Name: "停止中", IsActive: false, CreatedAt: now.Add(time.Hour)}
	current := &models.ContractTemplate{ID: uuid.New(), Name: "標準プラン", IsActive: true, CreatedAt: now}
	for _, row := range []*models.ContractTemplate{old, retired, current} {
		require.NoError(t, db.Create(row).Error)
	}

	tmpl, err = repo.ActiveTemplate(ctx)
	require.NoError(t, err)
	require.NotNil(t, tmpl)
	assert.Equal(t, current.ID, tmpl.ID)
	assert.Equal(t, "標準プラン", tmpl.Name)
}
