package usecase

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"path"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/riskibarqy/esports-hub/internal/domain/player"
	"github.com/riskibarqy/esports-hub/internal/domain/team"
	idgen "github.com/riskibarqy/esports-hub/internal/platform/id"
	"github.com/riskibarqy/esports-hub/internal/platform/logging"
)

// Raster formats only.
var imageExtensions = map[string]string{
	"image/png":  "png",
	"image/jpeg": "jpg",
	"image/webp": "webp",
}

// sniffLen is the prefix read to detect the real content type.
const sniffLen = 3072

// Upload is an image received from an admin form.
type Upload struct {
	Filename    string
	ContentType string
	Size        int64
	Body        io.Reader
}

// ObjectStorage stores public media objects.
type ObjectStorage interface {
	Put(ctx context.Context, key, contentType string, body io.Reader, size int64) (string, error)
	Delete(ctx context.Context, key string) error
	// KeyForURL returns the object key behind a public URL served by this storage.
	KeyForURL(publicURL string) (string, bool)
}

type MediaService struct {
	storage    ObjectStorage
	teamRepo   team.Repository
	playerRepo player.Repository
	idGen      idgen.Generator
	maxBytes   int64
	logger     *logging.Logger
	now        func() time.Time
}

func NewMediaService(
	storage ObjectStorage,
	teamRepo team.Repository,
	playerRepo player.Repository,
	idGen idgen.Generator,
	maxBytes int64,
	logger *logging.Logger,
) *MediaService {
	if logger == nil {
		logger = logging.Default()
	}

	return &MediaService{
		storage:    storage,
		teamRepo:   teamRepo,
		playerRepo: playerRepo,
		idGen:      idGen,
		maxBytes:   maxBytes,
		logger:     logger,
		now:        time.Now,
	}
}

// MaxUploadBytes is the largest accepted image.
func (s *MediaService) MaxUploadBytes() int64 {
	return s.maxBytes
}

func (s *MediaService) UploadTeamLogo(ctx context.Context, teamID int64, upload Upload) (team.Team, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MediaService.UploadTeamLogo")
	defer span.End()

	if teamID <= 0 {
		return team.Team{}, fmt.Errorf("%w: team id is required", ErrInvalidInput)
	}
	item, exists, err := s.teamRepo.GetByID(ctx, teamID)
	if err != nil {
		return team.Team{}, fmt.Errorf("get team by id: %w", err)
	}
	if !exists {
		return team.Team{}, fmt.Errorf("%w: team=%d", ErrNotFound, teamID)
	}

	url, err := s.put(ctx, fmt.Sprintf("teams/%d", teamID), upload)
	if err != nil {
		return team.Team{}, err
	}

	previous := item.LogoURL
	item.LogoURL = url
	item.UpdatedAt = s.now().UTC()
	updated, err := s.teamRepo.Update(ctx, item)
	if err != nil {
		s.removeObject(ctx, url)
		return team.Team{}, wrapStoreError("update team logo", err)
	}

	s.removeObject(ctx, previous)
	return updated, nil
}

func (s *MediaService) UploadPlayerAvatar(ctx context.Context, playerID int64, upload Upload) (player.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MediaService.UploadPlayerAvatar")
	defer span.End()

	if playerID <= 0 {
		return player.Player{}, fmt.Errorf("%w: player id is required", ErrInvalidInput)
	}
	item, exists, err := s.playerRepo.GetByID(ctx, playerID)
	if err != nil {
		return player.Player{}, fmt.Errorf("get player by id: %w", err)
	}
	if !exists {
		return player.Player{}, fmt.Errorf("%w: player=%d", ErrNotFound, playerID)
	}

	url, err := s.put(ctx, fmt.Sprintf("players/%d", playerID), upload)
	if err != nil {
		return player.Player{}, err
	}

	previous := item.AvatarURL
	item.AvatarURL = url
	item.UpdatedAt = s.now().UTC()
	updated, err := s.playerRepo.Update(ctx, item)
	if err != nil {
		s.removeObject(ctx, url)
		return player.Player{}, wrapStoreError("update player avatar", err)
	}

	s.removeObject(ctx, previous)
	return updated, nil
}

func (s *MediaService) put(ctx context.Context, prefix string, upload Upload) (string, error) {
	if s.storage == nil {
		return "", fmt.Errorf("%w: media storage is not configured", ErrDependencyUnavailable)
	}
	if upload.Body == nil || upload.Size <= 0 {
		return "", fmt.Errorf("%w: file is required", ErrInvalidInput)
	}
	if s.maxBytes > 0 && upload.Size > s.maxBytes {
		return "", fmt.Errorf("%w: file exceeds %d bytes", ErrInvalidInput, s.maxBytes)
	}

	contentType, ext, err := resolveImageType(upload)
	if err != nil {
		return "", err
	}
	body, err := sniffImage(upload.Body, contentType)
	if err != nil {
		return "", err
	}

	objectID, err := s.idGen.NewID()
	if err != nil {
		return "", fmt.Errorf("generate object id: %w", err)
	}
	key := fmt.Sprintf("%s/%s.%s", prefix, objectID, ext)

	url, err := s.storage.Put(ctx, key, contentType, body, upload.Size)
	if err != nil {
		return "", fmt.Errorf("upload object: %w", err)
	}
	return url, nil
}

// removeObject deletes an object this storage owns. Failures only leave an orphaned object.
func (s *MediaService) removeObject(ctx context.Context, publicURL string) {
	if strings.TrimSpace(publicURL) == "" {
		return
	}
	key, ok := s.storage.KeyForURL(publicURL)
	if !ok {
		return
	}
	if err := s.storage.Delete(ctx, key); err != nil {
		s.logger.WarnContext(ctx, "delete media object failed", "key", key, "error", err)
	}
}

func resolveImageType(upload Upload) (string, string, error) {
	contentType := strings.ToLower(strings.TrimSpace(upload.ContentType))
	if parsed, _, err := mime.ParseMediaType(contentType); err == nil {
		contentType = parsed
	}
	if ext, ok := imageExtensions[contentType]; ok {
		return contentType, ext, nil
	}

	switch strings.ToLower(path.Ext(upload.Filename)) {
	case ".png":
		return "image/png", "png", nil
	case ".jpg", ".jpeg":
		return "image/jpeg", "jpg", nil
	case ".webp":
		return "image/webp", "webp", nil
	}
	return "", "", fmt.Errorf("%w: unsupported image type %q", ErrInvalidInput, upload.ContentType)
}

// sniffImage checks the leading bytes against the declared type and returns a
// reader that replays them ahead of the rest of body.
func sniffImage(body io.Reader, declared string) (io.Reader, error) {
	head := make([]byte, sniffLen)
	n, err := io.ReadFull(body, head)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) {
		return nil, fmt.Errorf("read upload: %w", err)
	}
	head = head[:n]

	detected := mimetype.Detect(head)
	if !detected.Is(declared) {
		return nil, fmt.Errorf("%w: file content is %s, not %s", ErrInvalidInput, detected.String(), declared)
	}
	return io.MultiReader(bytes.NewReader(head), body), nil
}
