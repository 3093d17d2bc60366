package uploads

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/swoop-build/swoop-backend/config"
)

func testKeyPEM(t *testing.T) string {
	t.Helper()
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	block := &pem.Block{Type: "RSA PRIVATE KEY", Bytes: x509.MarshalPKCS1PrivateKey(key)}
	return string(pem.EncodeToMemory(block))
}

func testStorageConfig(t *testing.T) config.StorageConfig {
	return config.StorageConfig{
		Bucket:           "swoop-test-bucket",
		SignerEmail:      "uploader@test.iam.gserviceaccount.com",
		SignerPrivateKey: testKeyPEM(t),
		SignedURLExpiry:  15 * time.Minute,
	}
}

func TestSigner_SignUpload(t *testing.T) {
	signer := NewSigner(testStorageConfig(t))

	signed, err := signer.SignUpload(context.Background(), "acct-1", "floor plan.pdf", "application/pdf")
	require.NoError(t, err)

	assert.Contains(t, signed.SignedRequest, "swoop-test-bucket")
	assert.Contains(t, signed.SignedRequest, "X-Goog-Signature")
	assert.Contains(t, signed.ObjectKey, "uploads/acct-1/")
	assert.Contains(t, signed.ObjectKey, "floor plan.pdf")
	assert.Equal(t, "https://storage.googleapis.com/swoop-test-bucket/"+signed.ObjectKey, signed.URL)
	assert.True(t, signed.ExpiresAt.After(time.Now()))
}

func TestSigner_SignUpload_KeysAreUnique(t *testing.T) {
	signer := NewSigner(testStorageConfig(t))

	a, err := signer.SignUpload(context.Background(), "acct-1", "plan.pdf", "application/pdf")
	require.NoError(t, err)
	b, err := signer.SignUpload(context.Background(), "acct-1", "plan.pdf", "application/pdf")
	require.NoError(t, err)
	assert.NotEqual(t, a.ObjectKey, b.ObjectKey)
}

func TestSigner_SignUpload_Validation(t *testing.T) {
	cfg := testStorageConfig(t)
	cfg.Bucket = ""
	_, err := NewSigner(cfg).SignUpload(context.Background(), "acct-1", "plan.pdf", "application/pdf")
	assert.Error(t, err)

	_, err = NewSigner(testStorageConfig(t)).SignUpload(context.Background(), "acct-1", "  ", "application/pdf")
	assert.Error(t, err)
}
