package infrastructure

import "github.com/sweetslice/go-backend/pkg/e"

// GetExtensionFromMIME maps an image MIME type to a file extension.
// Supports jpeg, jpg, png, webp; anything else reports ErrUnsupportedMediaType.
func GetExtensionFromMIME(mime string) (string, error) {
	switch mime {
	case "image/jpeg", "image/jpg":
		return "jpg", nil
	case "image/png":
		return "png", nil
	case "image/webp":
		return "webp", nil
	default:
		return "bin", e.ErrUnsupportedMediaType
	}
}
