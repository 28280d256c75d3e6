package usecase

import (
	"context"
	"time"

	"github.com/sweetslice/go-backend/internal/domain"
)

type ImagesInfra interface {
	UploadImages(ctx context.Context, req *UploadImagesReq) (*UploadImagesRes, error)
	CleanupImages(keys []string)
}

type MessageProducer interface {
	WriteRawMessage(ctx context.Context, req *WriteRawMessageReq) error
}

type TokenService interface {
	Generate(user *domain.User) (string, time.Time, error)
	Validate(token string) (*Principal, error)
}
