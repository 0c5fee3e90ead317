package services

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	gerrors "github.com/go-faster/errors"
	"github.com/google/uuid"

	"github.com/owow-nl/wizkid-manager/modules/core/infrastructure/storage"
	"github.com/owow-nl/wizkid-manager/pkg/configuration"
)

var (
	ErrAvatarTooLarge   = gerrors.New("avatar exceeds the maximum allowed size")
	ErrAvatarNotAnImage = gerrors.New("avatar is not a supported image format")
)

// allowedAvatarTypes maps sniffed MIME types to the stored file extension.
// The client-supplied content type and filename are ignored.
var allowedAvatarTypes = map[string]string{
	"image/png":  "png",
	"image/jpeg": "jpg",
	"image/gif":  "gif",
	"image/webp": "webp",
}

type AvatarService struct {
	storage storage.AvatarStorage
}

func NewAvatarService(st storage.AvatarStorage) *AvatarService {
	return &AvatarService{storage: st}
}

// Upload validates the image and stores it under a stable per-user key so a
// re-upload replaces the previous avatar. The returned URL carries a
// timestamp query parameter to defeat browser caching of the old image.
func (s *AvatarService) Upload(ctx context.Context, userID uuid.UUID, data []byte) (string, error) {
	conf := configuration.Use()
	if int64(len(data)) > conf.MaxAvatarSize {
		return "", ErrAvatarTooLarge
	}

	mime := mimetype.Detect(data)
	ext, ok := allowedAvatarTypes[mime.String()]
	if !ok {
		return "", ErrAvatarNotAnImage
	}

	key := fmt.Sprintf("avatars/%s/avatar.%s", userID, ext)
	if err := s.storage.Save(ctx, key, mime.String(), data); err != nil {
		return "", err
	}

	url := s.storage.PublicURL(key)
	sep := "?"
	if strings.Contains(url, "?") {
		sep = "&"
	}
	return url + sep + "t=" + strconv.FormatInt(time.Now().UnixMilli(), 10), nil
}
