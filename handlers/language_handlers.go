package handlers

import (
	"github.com/gofiber/fiber/v2"

	"tubetext/api-gateway/transcript"
	"tubetext/api-gateway/utils"
)

// GetLanguages lists the caption languages available for a video.
// GET /api/languages/:videoId
func (h *ApplicationHandler) GetLanguages(c *fiber.Ctx) error {
	videoID := c.Params("videoId")
	if !transcript.ValidVideoID(videoID) {
		return h.respondTranscriptError(c, videoID, transcript.ErrInvalidURL)
	}

	tracks, err := h.Source.ListTracks(c.Context(), videoID)
	if err != nil {
		return h.respondTranscriptError(c, videoID, err)
	}

	languages := make([]string, 0, len(tracks))
	for _, t := range tracks {
		languages = append(languages, t.LanguageCode)
	}

	return utils.RespondWithJSON(c, fiber.StatusOK, fiber.Map{
		"success":   true,
		"video_id":  videoID,
		"languages": languages,
	})
}

// HealthCheck reports service liveness and cache occupancy.
// GET /api/health
func (h *ApplicationHandler) HealthCheck(c *fiber.Ctx) error {
	return utils.RespondWithJSON(c, fiber.StatusOK, fiber.Map{
		"status":        "healthy",
		"cache_size":    h.Cache.Len(),
		"cache_maxsize": h.Cache.MaxEntries(),
	})
}
