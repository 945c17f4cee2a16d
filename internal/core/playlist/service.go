// Copyright (c) 2026 Mixlist. All rights reserved.
// Author: dev@mixlist.fm

package playlist

import (
	"context"
	"log/slog"
	"strings"

	"github.com/mixlist/mixlist/internal/audit"
	"github.com/mixlist/mixlist/internal/platform/apperr"
	"github.com/mixlist/mixlist/internal/platform/metrics"
	"github.com/mixlist/mixlist/internal/platform/sec"
	"github.com/mixlist/mixlist/internal/platform/validate"
	"github.com/mixlist/mixlist/pkg/pointer"
)

// Enricher fills missing song metadata (duration, thumbnail) from the source
// platform. Implementations are best-effort collaborators; a failed lookup
// never blocks the write.
type Enricher interface {
	Enrich(context context.Context, song *Song) error
}

// Service orchestrates playlist, song, social, and discovery use cases.
//
// Visibility and ownership rules live here: the repositories return whatever
// is asked of them, and this layer decides who may ask.
type Service struct {
	playlists Repository
	songs     SongRepository
	social    SocialRepository
	enricher  Enricher
	recorder  audit.Recorder
	logger    *slog.Logger
}

// NewService constructs a new playlist [Service] with its dependencies.
// enricher may be nil when no metadata providers are configured.
func NewService(
	playlists Repository,
	songs SongRepository,
	social SocialRepository,
	enricher Enricher,
	recorder audit.Recorder,
	logger *slog.Logger,
) *Service {
	return &Service{
		playlists: playlists,
		songs:     songs,
		social:    social,
		enricher:  enricher,
		recorder:  recorder,
		logger:    logger,
	}
}

// # Visibility Rules

// visibleTo reports whether a viewer may read a playlist. Private playlists
// are only visible to their owner or an administrator.
func visibleTo(viewer *sec.Principal, p *Playlist) bool {
	if p.IsPublic {
		return true
	}
	return sec.OwnerOrRole(viewer, p.OwnerID, sec.RoleAdministrator)
}

// previewOnly reports whether a viewer is restricted to the anonymous
// preview experience (public playlists, capped song listings).
func previewOnly(viewer *sec.Principal) bool {
	return viewer == nil || viewer.Role == sec.RoleUnregistered
}

/*
List returns a filtered page of playlists.

Viewers without a full account are forced onto public playlists regardless of
the requested visibility filter.

Parameters:
  - context: context.Context
  - viewer: *sec.Principal (nil for anonymous)
  - filter: Filter
  - limit: int (caller-clamped)
  - offset: int

Returns:
  - []*Playlist: The matching page
  - int: Total count for the filter
  - error: Database retrieval failures
*/
func (service *Service) List(ctx context.Context, viewer *sec.Principal, filter Filter, limit, offset int) ([]*Playlist, int, error) {
	if previewOnly(viewer) {
		filter.IsPublic = pointer.To(true)
	}

	return service.playlists.List(ctx, filter, limit, offset)
}

/*
Get returns one playlist with the viewer's like/favorite status attached.

Parameters:
  - context: context.Context
  - viewer: *sec.Principal (nil for anonymous)
  - id: int64

Returns:
  - *Detail: The playlist and the viewer's relationship to it
  - error: NotFound if missing, Forbidden for private playlists
*/
func (service *Service) Get(ctx context.Context, viewer *sec.Principal, id int64) (*Detail, error) {
	p, err := service.playlists.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !visibleTo(viewer, p) {
		return nil, apperr.Forbidden("This playlist is private")
	}

	detail := &Detail{Playlist: *p}

	if viewer != nil {
		liked, err := service.social.Liked(ctx, id, viewer.ID)
		if err != nil {
			return nil, err
		}
		detail.UserLiked = liked

		favoritedAt, err := service.social.FavoritedAt(ctx, id, viewer.ID)
		if err != nil {
			return nil, err
		}
		detail.UserFavorited = favoritedAt != nil
	}

	return detail, nil
}

/*
Create persists a new playlist owned by the acting principal.

Parameters:
  - context: context.Context
  - actor: *sec.Principal
  - input: CreateInput

Returns:
  - *Playlist: The created entity
  - error: ValidationError or storage errors
*/
func (service *Service) Create(ctx context.Context, actor *sec.Principal, input CreateInput) (*Playlist, error) {
	title := strings.TrimSpace(input.Title)

	v := &validate.Validator{}
	v.Required("title", title).MaxLen("title", title, MaxTitleLength)
	if err := v.Err(); err != nil {
		return nil, err
	}

	// New playlists are public unless the owner opts out.
	isPublic := pointer.Fallback(input.IsPublic, true)

	p := &Playlist{
		OwnerID:     actor.ID,
		Title:       title,
		Description: trimPtr(input.Description),
		CoverURL:    trimPtr(input.CoverURL),
		IsPublic:    isPublic,
	}

	if err := service.playlists.Create(ctx, p, input.GenreIDs); err != nil {
		return nil, err
	}

	visibility := "private"
	if isPublic {
		visibility = "public"
	}
	metrics.PlaylistsCreatedTotal.WithLabelValues(visibility).Inc()

	service.recorder.Record(ctx, audit.ActionPlaylistCreated, &actor.ID, &p.ID)

	return service.playlists.FindByID(ctx, p.ID)
}

/*
Update applies a partial set of changes to a playlist.

A visibility flip additionally records a publish or unpublish audit entry on
top of the regular update entry.

Parameters:
  - context: context.Context
  - actor: *sec.Principal
  - id: int64
  - input: UpdateInput

Returns:
  - *Playlist: The updated entity
  - error: NotFound, Forbidden, ValidationError, or storage errors
*/
func (service *Service) Update(ctx context.Context, actor *sec.Principal, id int64, input UpdateInput) (*Playlist, error) {
	p, err := service.playlists.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !sec.OwnerOrRole(actor, p.OwnerID, sec.RoleAdministrator) {
		return nil, apperr.Forbidden("You can only update your own playlists")
	}

	wasPublic := p.IsPublic

	if input.Title != nil {
		title := strings.TrimSpace(*input.Title)

		v := &validate.Validator{}
		v.Required("title", title).MaxLen("title", title, MaxTitleLength)
		if err := v.Err(); err != nil {
			return nil, err
		}

		p.Title = title
	}
	if input.Description != nil {
		p.Description = trimPtr(input.Description)
	}
	if input.CoverURL != nil {
		p.CoverURL = trimPtr(input.CoverURL)
	}
	if input.IsPublic != nil {
		p.IsPublic = *input.IsPublic
	}

	if err := service.playlists.Update(ctx, p); err != nil {
		return nil, err
	}

	if input.GenreIDs != nil {
		if err := service.playlists.ReplaceGenres(ctx, id, *input.GenreIDs); err != nil {
			return nil, err
		}
	}

	if p.IsPublic && !wasPublic {
		service.recorder.Record(ctx, audit.ActionPlaylistPublished, &actor.ID, &id)
	} else if !p.IsPublic && wasPublic {
		service.recorder.Record(ctx, audit.ActionPlaylistUnpublished, &actor.ID, &id)
	}
	service.recorder.Record(ctx, audit.ActionPlaylistUpdated, &actor.ID, &id)

	return service.playlists.FindByID(ctx, id)
}

/*
Delete removes a playlist and everything attached to it.

Parameters:
  - context: context.Context
  - actor: *sec.Principal
  - id: int64

Returns:
  - error: NotFound, Forbidden, or storage errors
*/
func (service *Service) Delete(ctx context.Context, actor *sec.Principal, id int64) error {
	p, err := service.playlists.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if !sec.OwnerOrRole(actor, p.OwnerID, sec.RoleAdministrator) {
		return apperr.Forbidden("You can only delete your own playlists")
	}

	if err := service.playlists.Delete(ctx, id); err != nil {
		return err
	}

	service.recorder.Record(ctx, audit.ActionPlaylistDeleted, &actor.ID, &id)

	return nil
}

// trimPtr trims a string pointer and drops it entirely when empty.
func trimPtr(value *string) *string {
	if value == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*value)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
