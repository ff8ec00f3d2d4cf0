package signatures

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/aquaplan/aquatutor-backend/pkg/db/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupSignaturesTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	signatures := `
CREATE TABLE IF NOT EXISTS signatures (
  id TEXT PRIMARY KEY,
  application_id TEXT NOT NULL,
  signature_data TEXT NOT NULL,
  signed_by TEXT NOT NULL DEFAULT '',
  signed_at DATETIME NOT NULL,
  email_sent INTEGER NOT NULL DEFAULT 0,
  email_sent_at DATETIME,
  pdf_url TEXT,
  created_at DATETIME
);`
	require.NoError(t, db.Exec(signatures).Error)
	return db
}

// The signing flow stores the row without a rendered PDF location, so the
// insert must succeed while PDFURL is still nil.
func TestCreateAcceptsMissingPDFURL(t *testing.T) {
	db := setupSignaturesTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	signature := &models.Signature{
		ID:            uuid.New(),
		ApplicationID: uuid.New(),
		SignatureData: "data:image/png;base64,AAAA",
		SignedBy:      "山田 太郎",
		SignedAt:      time.Now().UTC(),
	}
	require.NoError(t, repo.Create(ctx, signature))

	stored, err := repo.FindByApplicationID(ctx, signature.ApplicationID)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, signature.ID, stored.ID)
	assert.Nil(t, stored.PDFURL)
	assert.False(t, stored.EmailSent)
}

func TestFindByApplicationIDReturnsNewest(t *testing.T) {
	db := setupSignaturesTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	appID := uuid.New()
	base := time.Now().UTC().Add(-time.Hour)
	var latest uuid.UUID
	for i := 0; i < 2; i++ {
		sig := &models.Signature{
			ID:            uuid.New(),
			ApplicationID: appID,
			SignatureData: "data:image/png;base64,AAAA",
			SignedBy:      "山田 太郎",
			SignedAt:      base.Add(time.Duration(i) * time.Minute),
		}
		require.NoError(t, repo.Create(ctx, sig))
		latest = sig.ID
	}

	stored, err := repo.FindByApplicationID(ctx, appID)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, latest, stored.ID)

	missing, err := repo.FindByApplicationID(ctx, uuid.New())
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestMarkEmailSentStampsBookkeeping(t *testing.T) {
	db := setupSignaturesTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	signature := &models.Signature{
		ID:            uuid.New(),
		ApplicationID: uuid.New(),
		SignatureData: "data:image/png;base64,AAAA",
		SignedBy:      "山田 太郎",
		SignedAt:      time.Now().UTC(),
	}
	require.NoError(t, repo.Create(ctx, signature))

	sentAt := time.Now().UTC().Truncate(time.Second)
	require.NoError(t, repo.MarkEmailSent(ctx, signature.ID, sentAt))

	stored, err := repo.FindByApplicationID(ctx, signature.ApplicationID)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.True(t, stored.EmailSent)
	require.NotNil(t, stored.EmailSentAt)
	assert.WithinDuration(t, sentAt, *stored.EmailSentAt, time.Second)
}
