// Copyright (c) 2026 Aurastream. All rights reserved.

package watch

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/aurastream/api/internal/platform/apperr"
	requestutil "github.com/aurastream/api/internal/platform/request"
	"github.com/aurastream/api/internal/platform/respond"
	"github.com/aurastream/api/internal/platform/validate"
	"github.com/aurastream/api/internal/session"
)

// Handler implements the HTTP layer for playback checkpoints.
//
// All routes assume the platform Authenticate middleware and the session
// RequireIdentity middleware ran upstream.
type Handler struct {
	watchService *Service
}

// NewHandler constructs a new watch [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{watchService: service}
}

// Routes returns a [chi.Router] configured with the watch domain's endpoints.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	// Checkpoint Lifecycle
	router.Post("/", handler.start)
	router.Get("/", handler.list)
	router.Get("/{mediaId}/{mediaType}", handler.getOne)
	router.Put("/{mediaId}/{mediaType}", handler.checkpoint)
	router.Delete("/{mediaId}/{mediaType}", handler.remove)

	return router
}

// # Checkpoint Endpoints

// startRequest defines the payload a client sends when a title starts playing.
type startRequest struct {
	MediaID        int64  `json:"mediaId"`
	MediaType      string `json:"mediaType"`
	Title          string `json:"title"`
	BackdropPath   string `json:"backdropPath"`
	PosterPath     string `json:"posterPath"`
	CurrentSeason  int    `json:"currentSeason"`
	CurrentEpisode int    `json:"currentEpisode"`
}

/*
POST /api/v1/continue-watching.

Description: Registers a first play for the selected profile. Replayed
reports refresh recency only; the stored offset never regresses.

Request:
  - body: startRequest

Response:
  - 200: Checkpoint (bare): Existing record, recency refreshed
  - 201: Checkpoint (bare): New record at offset zero
  - 401: ErrUnauthorized: No profile-scoped session
*/
func (handler *Handler) start(writer http.ResponseWriter, request *http.Request) {
	identity, err := session.RequiredProfileIdentity(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input startRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	checkpoint, created, err := handler.watchService.Start(request.Context(), StartInput{
		AccountID:      identity.Account.ID,
		ProfileID:      identity.Profile.ID,
		MediaID:        input.MediaID,
		MediaType:      input.MediaType,
		Title:          input.Title,
		BackdropPath:   input.BackdropPath,
		PosterPath:     input.PosterPath,
		CurrentSeason:  input.CurrentSeason,
		CurrentEpisode: input.CurrentEpisode,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if created {
		respond.Created(writer, checkpoint)
		return
	}
	respond.OK(writer, checkpoint)
}

/*
GET /api/v1/continue-watching?profileId=...

Description: Returns the continue-watching rail for the given profile, most
recently watched first, capped at twenty entries.

Response:
  - 200: {continueWatching}: The rail
  - 400: Validation: Missing profileId query parameter
*/
func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	identity, err := session.RequiredIdentity(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	profileID := requestutil.Query(request, "profileId")
	if profileID == "" {
		respond.Error(writer, request, apperr.ValidationError("profileId is required"))
		return
	}

	checkpoints, err := handler.watchService.List(request.Context(), identity.Account.ID, profileID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]any{
		"continueWatching": checkpoints,
	})
}

/*
GET /api/v1/continue-watching/{mediaId}/{mediaType}.

Description: Point lookup used by the watch page to resume playback. The
lookup keys on mediaId only; the mediaType path segment is accepted for
symmetry with the sibling routes.

Response:
  - 200: Checkpoint (bare)
  - 404: ErrNotFound: "Continue watching item not found"
*/
func (handler *Handler) getOne(writer http.ResponseWriter, request *http.Request) {
	identity, err := session.RequiredProfileIdentity(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	mediaID, err := pathMediaID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	checkpoint, err := handler.watchService.Get(request.Context(), identity.Account.ID, identity.Profile.ID, mediaID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, checkpoint)
}

// checkpointRequest defines the periodic progress payload (5-second tick).
type checkpointRequest struct {
	CurrentTime    float64  `json:"currentTime"`
	CurrentSeason  int      `json:"currentSeason"`
	CurrentEpisode int      `json:"currentEpisode"`
	TotalDuration  *float64 `json:"totalDuration"`
}

/*
PUT /api/v1/continue-watching/{mediaId}/{mediaType}.

Description: Overwrites the playback offset of an existing checkpoint.
Episodic fields are written for TV only; totalDuration only when supplied.
Never creates a record.

Request:
  - body: checkpointRequest

Response:
  - 200: {message, updatedItem}
  - 404: ErrNotFound: "Item not found in continue watching"
*/
func (handler *Handler) checkpoint(writer http.ResponseWriter, request *http.Request) {
	identity, err := session.RequiredProfileIdentity(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	mediaID, err := pathMediaID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input checkpointRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	updated, err := handler.watchService.Checkpoint(request.Context(), Key{
		AccountID: identity.Account.ID,
		ProfileID: identity.Profile.ID,
		MediaID:   mediaID,
		MediaType: requestutil.Param(request, "mediaType"),
	}, CheckpointInput{
		CurrentTime:    input.CurrentTime,
		CurrentSeason:  input.CurrentSeason,
		CurrentEpisode: input.CurrentEpisode,
		TotalDuration:  input.TotalDuration,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]any{
		"message":     "Progress updated successfully",
		"updatedItem": updated,
	})
}

/*
DELETE /api/v1/continue-watching/{mediaId}/{mediaType}?profileId=...

Description: Removes a checkpoint from the rail.

Response:
  - 200: {message}
  - 400: Validation: Missing profileId query parameter
  - 404: ErrNotFound: "Item not found in continue watching"
*/
func (handler *Handler) remove(writer http.ResponseWriter, request *http.Request) {
	identity, err := session.RequiredIdentity(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	profileID := requestutil.Query(request, "profileId")
	if profileID == "" {
		respond.Error(writer, request, apperr.ValidationError("profileId is required"))
		return
	}

	mediaID, err := pathMediaID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	err = handler.watchService.Remove(request.Context(), Key{
		AccountID: identity.Account.ID,
		ProfileID: profileID,
		MediaID:   mediaID,
		MediaType: requestutil.Param(request, "mediaType"),
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]any{
		"message": "Removed from continue watching successfully",
	})
}

// pathMediaID parses the {mediaId} path segment as a catalog identifier.
func pathMediaID(request *http.Request) (int64, error) {
	mediaID, err := strconv.ParseInt(requestutil.Param(request, "mediaId"), 10, 64)
	if err != nil {
		return 0, validate.RequiredError("mediaId", "Must be a number")
	}
	return mediaID, nil
}
