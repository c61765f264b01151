package draft

import (
	"context"
	"mime/multipart"

	"photobooking/internal/domain"
)

// CacheRepository persists the safe draft projection across reloads.
type CacheRepository interface {
	Save(ctx context.Context, draftID string, payload []byte) error
	Load(ctx context.Context, draftID string) ([]byte, error)
	Delete(ctx context.Context, draftID string) error
}

// CatalogReader resolves catalog snapshots at selection time.
type CatalogReader interface {
	ServiceByID(ctx context.Context, id int64) (*domain.Service, error)
	AddonsForService(ctx context.Context, serviceName string) ([]domain.Addon, error)
}

// ProofSaver stores an uploaded payment proof and returns its handle.
type ProofSaver interface {
	SaveProof(ctx context.Context, draftID string, fileHeader *multipart.FileHeader) (path string, url string, err error)
}

// TokenIssuer mints the per-instance token handed out at draft creation.
type TokenIssuer interface {
	IssueDraftToken(draftID string) (string, error)
}
