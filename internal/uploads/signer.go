package uploads

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"path"
	"strings"
	"time"

	"cloud.google.com/go/compute/metadata"
	"cloud.google.com/go/storage"
	"github.com/google/uuid"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/iamcredentials/v1"
	"google.golang.org/api/option"

	"github.com/swoop-build/swoop-backend/config"
)

// SignedUpload is the contract for the three-step upload flow: the client
// PUTs the bytes to SignedRequest, then registers the file against the
// project using URL.
type SignedUpload struct {
	SignedRequest string    `json:"signedRequest"`
	URL           string    `json:"url"`
	ObjectKey     string    `json:"objectKey"`
	ExpiresAt     time.Time `json:"expiresAt"`
}

// Signer issues V4 signed PUT URLs for direct-to-bucket uploads. The
// server never proxies file bytes.
type Signer struct {
	cfg config.StorageConfig
}

func NewSigner(cfg config.StorageConfig) *Signer {
	return &Signer{cfg: cfg}
}

// SignUpload builds a signed PUT URL for one object. The object key is
// namespaced under the account so listings stay per-tenant.
func (s *Signer) SignUpload(ctx context.Context, accountID, fileName, contentType string) (*SignedUpload, error) {
	if s.cfg.Bucket == "" {
		return nil, errors.New("GCS_BUCKET is required")
	}
	if strings.TrimSpace(fileName) == "" {
		return nil, errors.New("file name is required")
	}

	objectKey := path.Join("uploads", accountID, uuid.NewString()+"-"+path.Base(fileName))

	opts := &storage.SignedURLOptions{
		Scheme:      storage.SigningSchemeV4,
		Method:      "PUT",
		Expires:     time.Now().Add(s.cfg.SignedURLExpiry),
		ContentType: contentType,
	}

	if s.cfg.SignerEmail != "" && s.cfg.SignerPrivateKey != "" {
		opts.GoogleAccessID = s.cfg.SignerEmail
		opts.PrivateKey = normalizePrivateKey(s.cfg.SignerPrivateKey)
	} else {
		email, signBytes, err := s.iamSigner(ctx)
		if err != nil {
			return nil, err
		}
		opts.GoogleAccessID = email
		opts.SignBytes = signBytes
	}

	signedURL, err := storage.SignedURL(s.cfg.Bucket, objectKey, opts)
	if err != nil {
		return nil, err
	}

	return &SignedUpload{
		SignedRequest: signedURL,
		URL:           fmt.Sprintf("https://storage.googleapis.com/%s/%s", s.cfg.Bucket, objectKey),
		ObjectKey:     objectKey,
		ExpiresAt:     opts.Expires,
	}, nil
}

func normalizePrivateKey(key string) []byte {
	return []byte(strings.ReplaceAll(key, "\\n", "\n"))
}

// iamSigner signs via the IAM SignBlob API when no private key is
// configured, e.g. when running on GCE with a default service account.
func (s *Signer) iamSigner(ctx context.Context) (string, func([]byte) ([]byte, error), error) {
	email := s.cfg.SignerEmail
	if email == "" && metadata.OnGCE() {
		defaultEmail, err := metadata.Email("default")
		if err != nil {
			return "", nil, fmt.Errorf("failed to get default service account email: %w", err)
		}
		email = defaultEmail
	}
	if email == "" {
		return "", nil, errors.New("GCS_SIGNER_EMAIL is required when no private key is provided")
	}

	creds, err := google.FindDefaultCredentials(ctx, iamcredentials.CloudPlatformScope)
	if err != nil {
		return "", nil, fmt.Errorf("failed to load ADC credentials: %w", err)
	}
	svc, err := iamcredentials.NewService(ctx, option.WithCredentials(creds))
	if err != nil {
		return "", nil, fmt.Errorf("failed to create iamcredentials service: %w", err)
	}

	resource := fmt.Sprintf("projects/-/serviceAccounts/%s", email)
	signBytes := func(data []byte) ([]byte, error) {
		req := &iamcredentials.SignBlobRequest{
			Payload: base64.StdEncoding.EncodeToString(data),
		}
		resp, err := svc.Projects.ServiceAccounts.SignBlob(resource, req).Do()
		if err != nil {
			return nil, err
		}
		return base64.StdEncoding.DecodeString(resp.SignedBlob)
	}

	return email, signBytes, nil
}
