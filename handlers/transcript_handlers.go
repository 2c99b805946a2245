package handlers

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"

	"tubetext/api-gateway/cache"
	"tubetext/api-gateway/internal/ytsource"
	"tubetext/api-gateway/models"
	"tubetext/api-gateway/transcript"
	"tubetext/api-gateway/utils"
)

// TranscriptRequestPayload is the body of POST /api/transcript.
// IncludeTimestamps defaults to true when omitted.
type TranscriptRequestPayload struct {
	URL               string   `json:"url" validate:"required"`
	Languages         []string `json:"languages"`
	IncludeTimestamps *bool    `json:"include_timestamps"`
}

// GetTranscript fetches, formats, and caches a video transcript.
// POST /api/transcript
func (h *ApplicationHandler) GetTranscript(c *fiber.Ctx) error {
	var payload TranscriptRequestPayload
	if err := c.BodyParser(&payload); err != nil {
		return utils.RespondWithError(c, fiber.StatusBadRequest,
			"Invalid request body", fmt.Sprintf("Cannot parse JSON: %v", err))
	}
	if err := h.Validate.Struct(payload); err != nil {
		return utils.RespondWithError(c, fiber.StatusBadRequest,
			"Invalid request body", strings.Join(utils.FormatValidationErrors(err), ", "))
	}

	includeTimestamps := true
	if payload.IncludeTimestamps != nil {
		includeTimestamps = *payload.IncludeTimestamps
	}

	videoID, err := transcript.ExtractVideoID(strings.TrimSpace(payload.URL))
	if err != nil {
		return h.respondTranscriptError(c, videoID, err)
	}

	key := cache.Key(videoID, payload.Languages, includeTimestamps)
	if cached, ok := h.Cache.Get(key); ok {
		return utils.RespondWithJSON(c, fiber.StatusOK, transcriptResponse(cached, true))
	}

	tracks, err := h.Source.ListTracks(c.Context(), videoID)
	if err != nil {
		return h.respondTranscriptError(c, videoID, err)
	}

	language, err := transcript.SelectLanguage(payload.Languages, trackOptions(tracks))
	if err != nil {
		return h.respondTranscriptError(c, videoID, err)
	}

	selected, ok := trackByCode(tracks, language)
	if !ok {
		// SelectLanguage only returns codes taken from tracks.
		return h.respondTranscriptError(c, videoID, transcript.ErrNoMatchingLanguage)
	}

	segments, err := h.Source.FetchTrack(c.Context(), selected)
	if err != nil {
		return h.respondTranscriptError(c, videoID, err)
	}

	result := models.TranscriptResult{VideoID: videoID, Language: language, Segments: segments}
	out := models.TranscriptPayload{
		VideoID:       result.VideoID,
		Language:      result.Language,
		Transcript:    transcript.FormatSegments(result.Segments, includeTimestamps),
		TotalSegments: result.TotalSegments(),
	}
	h.Cache.Put(key, out)

	h.Logger.WithFields(map[string]interface{}{
		"video_id": videoID,
		"language": language,
		"segments": out.TotalSegments,
	}).Info("Transcript fetched")

	return utils.RespondWithJSON(c, fiber.StatusOK, transcriptResponse(out, false))
}

func transcriptResponse(p models.TranscriptPayload, cached bool) fiber.Map {
	return fiber.Map{
		"success":        true,
		"video_id":       p.VideoID,
		"language":       p.Language,
		"transcript":     p.Transcript,
		"total_segments": p.TotalSegments,
		"cached":         cached,
	}
}

func trackOptions(tracks []ytsource.CaptionTrack) []transcript.Track {
	opts := make([]transcript.Track, len(tracks))
	for i, t := range tracks {
		opts[i] = transcript.Track{Code: t.LanguageCode, AutoGenerated: t.AutoGenerated()}
	}
	return opts
}

func trackByCode(tracks []ytsource.CaptionTrack, code string) (ytsource.CaptionTrack, bool) {
	for _, t := range tracks {
		if t.LanguageCode == code {
			return t, true
		}
	}
	return ytsource.CaptionTrack{}, false
}

// respondTranscriptError maps pipeline error kinds to distinct HTTP
// statuses and stable (error, message) pairs. Nothing is ever cached on
// the failure path.
func (h *ApplicationHandler) respondTranscriptError(c *fiber.Ctx, videoID string, err error) error {
	switch {
	case errors.Is(err, transcript.ErrInvalidURL):
		return utils.RespondWithError(c, fiber.StatusBadRequest,
			"Invalid URL", "Could not extract a video ID from the input. Check that the URL is correct.")
	case errors.Is(err, transcript.ErrNoMatchingLanguage):
		return utils.RespondWithError(c, fiber.StatusNotFound,
			"Transcript not found", "No transcript could be found in the requested language.")
	case errors.Is(err, transcript.ErrTranscriptsDisabled):
		return utils.RespondWithError(c, fiber.StatusForbidden,
			"Transcripts disabled", "This video has no transcripts available.")
	case errors.Is(err, transcript.ErrVideoUnavailable):
		return utils.RespondWithError(c, fiber.StatusGone,
			"Video unavailable", "The video is private, has been removed, or does not exist.")
	case errors.Is(err, transcript.ErrUpstream):
		h.Logger.WithFields(map[string]interface{}{
			"video_id": videoID,
			"error":    err.Error(),
		}).Warn("Upstream transcript source failed")
		return utils.RespondWithError(c, fiber.StatusBadGateway,
			"Upstream error", "The transcript source could not be reached. Try again later.")
	default:
		h.Logger.WithFields(map[string]interface{}{
			"video_id": videoID,
			"error":    err.Error(),
		}).Error("Unexpected error handling transcript request")
		return utils.RespondWithError(c, fiber.StatusInternalServerError,
			"Internal error", "An unexpected error occurred while processing the request.")
	}
}
