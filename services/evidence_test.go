package services

import (
	"context"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidEvidence(t *testing.T) {
	assert.True(t, ValidEvidence("image/jpeg", 1024))
	assert.True(t, ValidEvidence("image/png", MaxEvidenceSize))
	assert.False(t, ValidEvidence("image/png", MaxEvidenceSize+1))
	assert.False(t, ValidEvidence("image/png", 0))
	assert.False(t, ValidEvidence("video/mp4", 1024))
}

func TestEvidenceKey(t *testing.T) {
	key := EvidenceKey(12, "Walk-In Fridge.PNG")
	assert.True(t, strings.HasPrefix(key, "reports/12/"))
	assert.True(t, strings.HasSuffix(key, ".png"))
	assert.True(t, EvidenceKeyBelongs(key, 12))
	assert.False(t, EvidenceKeyBelongs(key, 1))
	assert.False(t, EvidenceKeyBelongs("reports/12/../13/x.png", 12))
	assert.NotEqual(t, key, EvidenceKey(12, "Walk-In Fridge.PNG"))
}

func TestR2PresignUpload(t *testing.T) {
	storage := NewR2Storage(R2Options{
		AccountID:       "acct",
		AccessKeyID:     "AKIDEXAMPLE",
		SecretAccessKey: "secret",
		BucketName:      "evidence",
		PublicURL:       "https://cdn.example.com/",
		PresignExpiry:   10 * time.Minute,
	})

	raw, err := storage.PresignUpload(context.Background(), "reports/1/a.jpg", "image/jpeg")
	require.NoError(t, err)

	u, err := url.Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, "acct.r2.cloudflarestorage.com", u.Host)
	assert.Equal(t, "/evidence/reports/1/a.jpg", u.Path)
	assert.Equal(t, "600", u.Query().Get("X-Amz-Expires"))

	assert.Equal(t, "https://cdn.example.com/reports/1/a.jpg", storage.PublicURL("reports/1/a.jpg"))
}
