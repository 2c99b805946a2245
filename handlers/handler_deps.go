package handlers

import (
	"context"

	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"

	"tubetext/api-gateway/cache"
	"tubetext/api-gateway/internal/ytsource"
	"tubetext/api-gateway/models"
)

// TranscriptSource defines the operations handlers expect from the external
// caption source. This allows for decoupling and easier testing; the
// concrete implementation lives in internal/ytsource.
type TranscriptSource interface {
	ListTracks(ctx context.Context, videoID string) ([]ytsource.CaptionTrack, error)
	FetchTrack(ctx context.Context, track ytsource.CaptionTrack) ([]models.TranscriptSegment, error)
}

// ApplicationHandler holds shared dependencies for handlers. The cache is
// the single process-wide instance; handlers only ever receive payload
// copies from it.
type ApplicationHandler struct {
	Source   TranscriptSource
	Cache    *cache.Cache
	Logger   *logrus.Logger
	Validate *validator.Validate
}

// NewApplicationHandler creates an ApplicationHandler with the given
// dependencies.
func NewApplicationHandler(source TranscriptSource, transcriptCache *cache.Cache, logger *logrus.Logger) *ApplicationHandler {
	return &ApplicationHandler{
		Source:   source,
		Cache:    transcriptCache,
		Logger:   logger,
		Validate: validator.New(),
	}
}
