// Copyright (c) 2026 Mixlist. All rights reserved.
// Author: dev@mixlist.fm

package playlist_test

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mixlist/mixlist/internal/audit"
	"github.com/mixlist/mixlist/internal/core/playlist"
	"github.com/mixlist/mixlist/internal/platform/apperr"
	"github.com/mixlist/mixlist/internal/platform/dberr"
	"github.com/mixlist/mixlist/internal/platform/sec"
	"github.com/mixlist/mixlist/pkg/pointer"
)

// # In-Memory Fakes

type fakeRepo struct {
	playlists  map[int64]*playlist.Playlist
	nextID     int64
	lastFilter playlist.Filter
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{playlists: map[int64]*playlist.Playlist{}}
}

func (repo *fakeRepo) List(ctx context.Context, filter playlist.Filter, limit, offset int) ([]*playlist.Playlist, int, error) {
	repo.lastFilter = filter
	matched := make([]*playlist.Playlist, 0, len(repo.playlists))
	for _, p := range repo.playlists {
		if filter.IsPublic != nil && p.IsPublic != *filter.IsPublic {
			continue
		}
		matched = append(matched, p)
	}
	return matched, len(matched), nil
}

func (repo *fakeRepo) FindByID(ctx context.Context, id int64) (*playlist.Playlist, error) {
	p, ok := repo.playlists[id]
	if !ok {
		return nil, dberr.ErrNotFound
	}
	copied := *p
	return &copied, nil
}

func (repo *fakeRepo) Create(ctx context.Context, p *playlist.Playlist, genreIDs []int64) error {
	repo.nextID++
	p.ID = repo.nextID
	p.CreatedAt = time.Now()
	p.UpdatedAt = p.CreatedAt
	stored := *p
	repo.playlists[p.ID] = &stored
	return nil
}

func (repo *fakeRepo) Update(ctx context.Context, p *playlist.Playlist) error {
	if _, ok := repo.playlists[p.ID]; !ok {
		return dberr.ErrNotFound
	}
	stored := *p
	repo.playlists[p.ID] = &stored
	return nil
}

func (repo *fakeRepo) ReplaceGenres(ctx context.Context, playlistID int64, genreIDs []int64) error {
	return nil
}

func (repo *fakeRepo) Delete(ctx context.Context, id int64) error {
	if _, ok := repo.playlists[id]; !ok {
		return dberr.ErrNotFound
	}
	delete(repo.playlists, id)
	return nil
}

type fakeSongRepo struct {
	songs  map[int64][]*playlist.Song
	nextID int64
}

func newFakeSongRepo() *fakeSongRepo {
	return &fakeSongRepo{songs: map[int64][]*playlist.Song{}}
}

func (repo *fakeSongRepo) ListByPlaylist(ctx context.Context, playlistID int64, limit int) ([]*playlist.Song, int, error) {
	all := repo.songs[playlistID]
	total := len(all)
	if limit > 0 && limit < total {
		return all[:limit], total, nil
	}
	return all, total, nil
}

func (repo *fakeSongRepo) FindByID(ctx context.Context, playlistID, songID int64) (*playlist.Song, error) {
	for _, song := range repo.songs[playlistID] {
		if song.ID == songID {
			copied := *song
			return &copied, nil
		}
	}
	return nil, dberr.ErrNotFound
}

func (repo *fakeSongRepo) FindByURL(ctx context.Context, playlistID int64, url string) (*playlist.Song, error) {
	for _, song := range repo.songs[playlistID] {
		if song.URL == url {
			return song, nil
		}
	}
	return nil, dberr.ErrNotFound
}

func (repo *fakeSongRepo) Create(ctx context.Context, song *playlist.Song) error {
	repo.nextID++
	song.ID = repo.nextID
	song.Position = len(repo.songs[song.PlaylistID]) + 1
	song.AddedAt = time.Now()
	stored := *song
	repo.songs[song.PlaylistID] = append(repo.songs[song.PlaylistID], &stored)
	return nil
}

func (repo *fakeSongRepo) Update(ctx context.Context, song *playlist.Song) error {
	for i, existing := range repo.songs[song.PlaylistID] {
		if existing.ID == song.ID {
			stored := *song
			repo.songs[song.PlaylistID][i] = &stored
			return nil
		}
	}
	return dberr.ErrNotFound
}

func (repo *fakeSongRepo) Delete(ctx context.Context, playlistID, songID int64) error {
	for i, existing := range repo.songs[playlistID] {
		if existing.ID == songID {
			repo.songs[playlistID] = append(repo.songs[playlistID][:i], repo.songs[playlistID][i+1:]...)
			return nil
		}
	}
	return dberr.ErrNotFound
}

type socialKey struct {
	playlistID int64
	userID     int64
}

type fakeSocialRepo struct {
	likes     map[socialKey]bool
	favorites map[socialKey]time.Time
	clicks    []*int64

	tastes     []playlist.GenreTaste
	byGenres   []*playlist.Playlist
	mostLiked  []*playlist.Playlist
	lastLimit  int
	seenGenres []int64
}

func newFakeSocialRepo() *fakeSocialRepo {
	return &fakeSocialRepo{likes: map[socialKey]bool{}, favorites: map[socialKey]time.Time{}}
}

func (repo *fakeSocialRepo) CountLikes(ctx context.Context, playlistID int64) (int, error) {
	count := 0
	for key := range repo.likes {
		if key.playlistID == playlistID {
			count++
		}
	}
	return count, nil
}

func (repo *fakeSocialRepo) Liked(ctx context.Context, playlistID, userID int64) (bool, error) {
	return repo.likes[socialKey{playlistID, userID}], nil
}

func (repo *fakeSocialRepo) Like(ctx context.Context, playlistID, userID int64) error {
	repo.likes[socialKey{playlistID, userID}] = true
	return nil
}

func (repo *fakeSocialRepo) Unlike(ctx context.Context, playlistID, userID int64) error {
	key := socialKey{playlistID, userID}
	if !repo.likes[key] {
		return dberr.ErrNotFound
	}
	delete(repo.likes, key)
	return nil
}

func (repo *fakeSocialRepo) FavoritedAt(ctx context.Context, playlistID, userID int64) (*time.Time, error) {
	if at, ok := repo.favorites[socialKey{playlistID, userID}]; ok {
		return &at, nil
	}
	return nil, nil
}

func (repo *fakeSocialRepo) Favorite(ctx context.Context, playlistID, userID int64) error {
	repo.favorites[socialKey{playlistID, userID}] = time.Now()
	return nil
}

func (repo *fakeSocialRepo) Unfavorite(ctx context.Context, playlistID, userID int64) error {
	key := socialKey{playlistID, userID}
	if _, ok := repo.favorites[key]; !ok {
		return dberr.ErrNotFound
	}
	delete(repo.favorites, key)
	return nil
}

func (repo *fakeSocialRepo) FavoritesOf(ctx context.Context, userID int64) ([]*playlist.Playlist, error) {
	return nil, nil
}

func (repo *fakeSocialRepo) RecordClick(ctx context.Context, playlistID int64, userID *int64) error {
	repo.clicks = append(repo.clicks, userID)
	return nil
}

func (repo *fakeSocialRepo) ClickStats(ctx context.Context, playlistID int64, since time.Time) (*playlist.ClickStats, error) {
	return &playlist.ClickStats{PlaylistID: playlistID, TotalClicks: len(repo.clicks)}, nil
}

func (repo *fakeSocialRepo) LikedGenres(ctx context.Context, userID int64) ([]playlist.GenreTaste, error) {
	return repo.tastes, nil
}

func (repo *fakeSocialRepo) RecommendByGenres(ctx context.Context, userID int64, genreIDs []int64, limit int) ([]*playlist.Playlist, error) {
	repo.seenGenres = genreIDs
	return repo.byGenres, nil
}

func (repo *fakeSocialRepo) MostLiked(ctx context.Context, excludeOwner int64, limit int) ([]*playlist.Playlist, error) {
	return repo.mostLiked, nil
}

func (repo *fakeSocialRepo) Trending(ctx context.Context, since time.Time, limit int) ([]*playlist.TrendingPlaylist, error) {
	repo.lastLimit = limit
	return nil, nil
}

func (repo *fakeSocialRepo) PopularGenres(ctx context.Context, limit int) ([]playlist.GenrePopularity, error) {
	return nil, nil
}

func (repo *fakeSocialRepo) Newest(ctx context.Context, limit int) ([]*playlist.Playlist, error) {
	repo.lastLimit = limit
	return nil, nil
}

type fakeRecorder struct {
	actions []audit.Action
}

func (recorder *fakeRecorder) Record(ctx context.Context, action audit.Action, actorID, targetID *int64) {
	recorder.actions = append(recorder.actions, action)
}

// fakeEnricher fills a fixed duration, or fails when err is set.
type fakeEnricher struct {
	err   error
	calls int
}

func (enricher *fakeEnricher) Enrich(ctx context.Context, song *playlist.Song) error {
	enricher.calls++
	if enricher.err != nil {
		return enricher.err
	}
	song.DurationSecs = pointer.To(180)
	return nil
}

// # Test Harness

type harness struct {
	service   *playlist.Service
	playlists *fakeRepo
	songs     *fakeSongRepo
	social    *fakeSocialRepo
	recorder  *fakeRecorder
	enricher  *fakeEnricher
}

func newHarness() *harness {
	h := &harness{
		playlists: newFakeRepo(),
		songs:     newFakeSongRepo(),
		social:    newFakeSocialRepo(),
		recorder:  &fakeRecorder{},
		enricher:  &fakeEnricher{},
	}
	h.service = playlist.NewService(
		h.playlists, h.songs, h.social, h.enricher, h.recorder,
		slog.New(slog.DiscardHandler),
	)
	return h
}

// seed stores a playlist directly, bypassing the service.
func (h *harness) seed(ownerID int64, isPublic bool) *playlist.Playlist {
	p := &playlist.Playlist{OwnerID: ownerID, Title: "Seeded", IsPublic: isPublic}
	_ = h.playlists.Create(context.Background(), p, nil)
	return p
}

var (
	owner    = &sec.Principal{ID: 1, Username: "owner", Role: sec.RoleRegularUser}
	stranger = &sec.Principal{ID: 2, Username: "stranger", Role: sec.RoleRegularUser}
	admin    = &sec.Principal{ID: 9, Username: "root", Role: sec.RoleAdministrator}
	guest    = &sec.Principal{ID: 7, Username: "guest", Role: sec.RoleUnregistered}
)

// # Playlist Lifecycle

/*
TestList_AnonymousForcedPublic verifies viewers without a full account cannot
widen the visibility filter.
*/
func TestList_AnonymousForcedPublic(t *testing.T) {
	h := newHarness()
	ctx := context.Background()

	_, _, err := h.service.List(ctx, nil, playlist.Filter{}, 10, 0)
	require.NoError(t, err)
	require.NotNil(t, h.playlists.lastFilter.IsPublic)
	assert.True(t, *h.playlists.lastFilter.IsPublic)

	// Unregistered accounts cannot ask for private rows either.
	_, _, err = h.service.List(ctx, guest, playlist.Filter{IsPublic: pointer.To(false)}, 10, 0)
	require.NoError(t, err)
	assert.True(t, *h.playlists.lastFilter.IsPublic)

	// Full accounts may leave the filter open.
	_, _, err = h.service.List(ctx, owner, playlist.Filter{}, 10, 0)
	require.NoError(t, err)
	assert.Nil(t, h.playlists.lastFilter.IsPublic)
}

/*
TestGet_PrivateVisibility verifies private playlists are readable only by
their owner or an administrator.
*/
func TestGet_PrivateVisibility(t *testing.T) {
	h := newHarness()
	ctx := context.Background()
	private := h.seed(owner.ID, false)

	tests := []struct {
		name      string
		viewer    *sec.Principal
		forbidden bool
	}{
		{"owner_reads_own_private", owner, false},
		{"admin_reads_any_private", admin, false},
		{"stranger_forbidden", stranger, true},
		{"anonymous_forbidden", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := h.service.Get(ctx, tt.viewer, private.ID)
			if tt.forbidden {
				require.Error(t, err)
				assert.Equal(t, "FORBIDDEN", apperr.As(err).Code)
				assert.Equal(t, "This playlist is private", apperr.As(err).Message)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

/*
TestGet_ViewerRelationship verifies the liked/favorited flags reflect the
viewer, not the playlist.
*/
func TestGet_ViewerRelationship(t *testing.T) {
	h := newHarness()
	ctx := context.Background()
	p := h.seed(owner.ID, true)

	require.NoError(t, h.social.Like(ctx, p.ID, stranger.ID))

	detail, err := h.service.Get(ctx, stranger, p.ID)
	require.NoError(t, err)
	assert.True(t, detail.UserLiked)
	assert.False(t, detail.UserFavorited)

	detail, err = h.service.Get(ctx, owner, p.ID)
	require.NoError(t, err)
	assert.False(t, detail.UserLiked)
}

/*
TestCreate verifies defaults, validation, and the audit trail for new
playlists.
*/
func TestCreate(t *testing.T) {
	h := newHarness()
	ctx := context.Background()

	t.Run("defaults_to_public", func(t *testing.T) {
		p, err := h.service.Create(ctx, owner, playlist.CreateInput{Title: "  Morning Mix  "})
		require.NoError(t, err)
		assert.Equal(t, "Morning Mix", p.Title)
		assert.True(t, p.IsPublic)
		assert.Equal(t, owner.ID, p.OwnerID)
		assert.Contains(t, h.recorder.actions, audit.ActionPlaylistCreated)
	})

	t.Run("explicit_private", func(t *testing.T) {
		p, err := h.service.Create(ctx, owner, playlist.CreateInput{Title: "Secret", IsPublic: pointer.To(false)})
		require.NoError(t, err)
		assert.False(t, p.IsPublic)
	})

	t.Run("blank_title_rejected", func(t *testing.T) {
		_, err := h.service.Create(ctx, owner, playlist.CreateInput{Title: "   "})
		require.Error(t, err)
		assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)
	})
}

/*
TestUpdate_PublishTransitions verifies visibility flips record publish and
unpublish entries on top of the regular update entry.
*/
func TestUpdate_PublishTransitions(t *testing.T) {
	h := newHarness()
	ctx := context.Background()
	p := h.seed(owner.ID, true)

	_, err := h.service.Update(ctx, owner, p.ID, playlist.UpdateInput{IsPublic: pointer.To(false)})
	require.NoError(t, err)
	assert.Equal(t, []audit.Action{audit.ActionPlaylistUnpublished, audit.ActionPlaylistUpdated}, h.recorder.actions)

	h.recorder.actions = nil
	_, err = h.service.Update(ctx, owner, p.ID, playlist.UpdateInput{IsPublic: pointer.To(true)})
	require.NoError(t, err)
	assert.Equal(t, []audit.Action{audit.ActionPlaylistPublished, audit.ActionPlaylistUpdated}, h.recorder.actions)

	// No flip, no publish entry.
	h.recorder.actions = nil
	_, err = h.service.Update(ctx, owner, p.ID, playlist.UpdateInput{Title: pointer.To("Renamed")})
	require.NoError(t, err)
	assert.Equal(t, []audit.Action{audit.ActionPlaylistUpdated}, h.recorder.actions)
}

/*
TestUpdate_Ownership verifies only the owner or an administrator may edit.
*/
func TestUpdate_Ownership(t *testing.T) {
	h := newHarness()
	ctx := context.Background()
	p := h.seed(owner.ID, true)

	_, err := h.service.Update(ctx, stranger, p.ID, playlist.UpdateInput{Title: pointer.To("Hijacked")})
	require.Error(t, err)
	assert.Equal(t, "You can only update your own playlists", apperr.As(err).Message)

	_, err = h.service.Update(ctx, admin, p.ID, playlist.UpdateInput{Title: pointer.To("Moderated")})
	assert.NoError(t, err)
}

/*
TestDelete verifies ownership gating and the audit trail for removals.
*/
func TestDelete(t *testing.T) {
	h := newHarness()
	ctx := context.Background()
	p := h.seed(owner.ID, true)

	require.Error(t, h.service.Delete(ctx, stranger, p.ID))

	require.NoError(t, h.service.Delete(ctx, owner, p.ID))
	assert.Empty(t, h.playlists.playlists)
	assert.Contains(t, h.recorder.actions, audit.ActionPlaylistDeleted)

	assert.ErrorIs(t, h.service.Delete(ctx, owner, p.ID), dberr.ErrNotFound)
}

// # Songs

func addSongs(h *harness, playlistID int64, count int) {
	for i := 0; i < count; i++ {
		song := &playlist.Song{
			PlaylistID: playlistID,
			Title:      "Track",
			Artist:     "Artist",
			URL:        "https://youtu.be/track" + string(rune('a'+i)),
			Platform:   playlist.PlatformYouTube,
		}
		_ = h.songs.Create(context.Background(), song)
	}
}

/*
TestListSongs_AnonymousPreview verifies the capped preview for viewers
without a full account.
*/
func TestListSongs_AnonymousPreview(t *testing.T) {
	h := newHarness()
	ctx := context.Background()
	p := h.seed(owner.ID, true)
	addSongs(h, p.ID, 12)

	t.Run("anonymous_capped_at_ten", func(t *testing.T) {
		list, err := h.service.ListSongs(ctx, nil, p.ID)
		require.NoError(t, err)
		assert.Len(t, list.Songs, 10)
		assert.Equal(t, 12, list.Total)
		assert.True(t, list.Limited)
	})

	t.Run("member_gets_everything", func(t *testing.T) {
		list, err := h.service.ListSongs(ctx, stranger, p.ID)
		require.NoError(t, err)
		assert.Len(t, list.Songs, 12)
		assert.False(t, list.Limited)
	})

	t.Run("private_playlist_forbidden", func(t *testing.T) {
		private := h.seed(owner.ID, false)
		_, err := h.service.ListSongs(ctx, stranger, private.ID)
		require.Error(t, err)
		assert.Equal(t, "FORBIDDEN", apperr.As(err).Code)
	})
}

/*
TestAddSong covers platform derivation, duplicate detection, metadata
enrichment, and ownership.
*/
func TestAddSong(t *testing.T) {
	ctx := context.Background()
	input := playlist.SongInput{
		Title:  "Windowlicker",
		Artist: "Aphex Twin",
		URL:    "https://www.youtube.com/watch?v=UBS4Gi1y_nc",
	}

	t.Run("derives_platform_and_enriches", func(t *testing.T) {
		h := newHarness()
		p := h.seed(owner.ID, true)

		song, err := h.service.AddSong(ctx, owner, p.ID, input)
		require.NoError(t, err)
		assert.Equal(t, playlist.PlatformYouTube, song.Platform)
		require.NotNil(t, song.DurationSecs)
		assert.Equal(t, 180, *song.DurationSecs)
		assert.Equal(t, 1, h.enricher.calls)
		assert.Contains(t, h.recorder.actions, audit.ActionSongAdded)
	})

	t.Run("duplicate_url_conflict", func(t *testing.T) {
		h := newHarness()
		p := h.seed(owner.ID, true)

		_, err := h.service.AddSong(ctx, owner, p.ID, input)
		require.NoError(t, err)

		_, err = h.service.AddSong(ctx, owner, p.ID, input)
		require.Error(t, err)
		assert.Equal(t, "CONFLICT", apperr.As(err).Code)
		assert.Equal(t, "Song already in playlist", apperr.As(err).Message)
	})

	t.Run("unsupported_platform_rejected", func(t *testing.T) {
		h := newHarness()
		p := h.seed(owner.ID, true)

		bad := input
		bad.URL = "https://soundcloud.com/artist/track"
		_, err := h.service.AddSong(ctx, owner, p.ID, bad)
		require.Error(t, err)
		assert.Equal(t, "Invalid URL. Only YouTube and Spotify links are allowed", apperr.As(err).Message)
	})

	t.Run("stranger_forbidden", func(t *testing.T) {
		h := newHarness()
		p := h.seed(owner.ID, true)

		_, err := h.service.AddSong(ctx, stranger, p.ID, input)
		require.Error(t, err)
		assert.Equal(t, "You can only add songs to your own playlists", apperr.As(err).Message)
	})

	t.Run("enrich_failure_never_blocks_write", func(t *testing.T) {
		h := newHarness()
		h.enricher.err = errors.New("quota exceeded")
		p := h.seed(owner.ID, true)

		song, err := h.service.AddSong(ctx, owner, p.ID, input)
		require.NoError(t, err)
		assert.Nil(t, song.DurationSecs)
	})

	t.Run("complete_metadata_skips_enricher", func(t *testing.T) {
		h := newHarness()
		p := h.seed(owner.ID, true)

		full := input
		full.DurationSecs = pointer.To(246)
		full.ThumbnailURL = pointer.To("https://i.ytimg.com/vi/UBS4Gi1y_nc/hq.jpg")
		_, err := h.service.AddSong(ctx, owner, p.ID, full)
		require.NoError(t, err)
		assert.Zero(t, h.enricher.calls)
	})
}

/*
TestUpdateSong_RederivesPlatform verifies a changed URL is revalidated and
reclassified.
*/
func TestUpdateSong_RederivesPlatform(t *testing.T) {
	h := newHarness()
	ctx := context.Background()
	p := h.seed(owner.ID, true)

	song, err := h.service.AddSong(ctx, owner, p.ID, playlist.SongInput{
		Title:  "Teardrop",
		Artist: "Massive Attack",
		URL:    "https://youtu.be/u7K72X4eo_s",
	})
	require.NoError(t, err)

	updated, err := h.service.UpdateSong(ctx, owner, p.ID, song.ID, playlist.SongUpdateInput{
		URL: pointer.To("https://open.spotify.com/track/67Hna13dNDkZvBpTXRIaOJ"),
	})
	require.NoError(t, err)
	assert.Equal(t, playlist.PlatformSpotify, updated.Platform)

	_, err = h.service.UpdateSong(ctx, owner, p.ID, song.ID, playlist.SongUpdateInput{
		URL: pointer.To("ftp://not-a-platform"),
	})
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)
}

/*
TestRemoveSong verifies ownership gating and missing-song handling.
*/
func TestRemoveSong(t *testing.T) {
	h := newHarness()
	ctx := context.Background()
	p := h.seed(owner.ID, true)
	addSongs(h, p.ID, 1)

	require.Error(t, h.service.RemoveSong(ctx, stranger, p.ID, 1))

	require.NoError(t, h.service.RemoveSong(ctx, owner, p.ID, 1))
	assert.Contains(t, h.recorder.actions, audit.ActionSongRemoved)

	assert.ErrorIs(t, h.service.RemoveSong(ctx, owner, p.ID, 1), dberr.ErrNotFound)
}

// # Social Signals

/*
TestLike verifies the like lifecycle: double likes conflict, removing a
missing like is a 404.
*/
func TestLike(t *testing.T) {
	h := newHarness()
	ctx := context.Background()
	p := h.seed(owner.ID, true)

	require.NoError(t, h.service.Like(ctx, stranger, p.ID))
	assert.Contains(t, h.recorder.actions, audit.ActionPlaylistLiked)

	err := h.service.Like(ctx, stranger, p.ID)
	require.Error(t, err)
	assert.Equal(t, "You already liked this playlist", apperr.As(err).Message)

	count, err := h.service.LikeCount(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	require.NoError(t, h.service.Unlike(ctx, stranger, p.ID))

	err = h.service.Unlike(ctx, stranger, p.ID)
	require.Error(t, err)
	ae := apperr.As(err)
	assert.Equal(t, "NOT_FOUND", ae.Code)
	assert.Equal(t, "Like not found", ae.Message)
}

/*
TestFavorite verifies the favorite lifecycle mirrors likes.
*/
func TestFavorite(t *testing.T) {
	h := newHarness()
	ctx := context.Background()
	p := h.seed(owner.ID, true)

	require.NoError(t, h.service.Favorite(ctx, stranger, p.ID))

	err := h.service.Favorite(ctx, stranger, p.ID)
	require.Error(t, err)
	assert.Equal(t, "Playlist already in favorites", apperr.As(err).Message)

	favorited, at, err := h.service.FavoriteStatus(ctx, stranger, p.ID)
	require.NoError(t, err)
	assert.True(t, favorited)
	assert.NotNil(t, at)

	require.NoError(t, h.service.Unfavorite(ctx, stranger, p.ID))

	err = h.service.Unfavorite(ctx, stranger, p.ID)
	require.Error(t, err)
	assert.Equal(t, "Favorite not found", apperr.As(err).Message)
}

/*
TestFavoritesOf verifies the list is private to its user and administrators.
*/
func TestFavoritesOf(t *testing.T) {
	h := newHarness()
	ctx := context.Background()

	_, err := h.service.FavoritesOf(ctx, stranger, owner.ID)
	require.Error(t, err)
	assert.Equal(t, "You can only view your own favorites", apperr.As(err).Message)

	_, err = h.service.FavoritesOf(ctx, owner, owner.ID)
	assert.NoError(t, err)

	_, err = h.service.FavoritesOf(ctx, admin, owner.ID)
	assert.NoError(t, err)
}

/*
TestClicks verifies anonymous clicks carry no actor and stats stay
owner-scoped.
*/
func TestClicks(t *testing.T) {
	h := newHarness()
	ctx := context.Background()
	p := h.seed(owner.ID, true)

	require.NoError(t, h.service.RecordClick(ctx, nil, p.ID))
	require.NoError(t, h.service.RecordClick(ctx, stranger, p.ID))

	require.Len(t, h.social.clicks, 2)
	assert.Nil(t, h.social.clicks[0])
	require.NotNil(t, h.social.clicks[1])
	assert.Equal(t, stranger.ID, *h.social.clicks[1])

	_, err := h.service.ClickStats(ctx, stranger, p.ID)
	require.Error(t, err)
	assert.Equal(t, "You can only view stats for your own playlists", apperr.As(err).Message)

	stats, err := h.service.ClickStats(ctx, owner, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, stats.TotalClicks)
}

// # Discovery

/*
TestRecommendationsFor verifies the genre-seeded path and the most-liked
fallback for users without likes.
*/
func TestRecommendationsFor(t *testing.T) {
	ctx := context.Background()

	t.Run("seeded_from_liked_genres", func(t *testing.T) {
		h := newHarness()
		h.social.tastes = []playlist.GenreTaste{
			{GenreID: 4, Name: "House", Count: 3},
			{GenreID: 9, Name: "Ambient", Count: 1},
		}
		h.social.byGenres = []*playlist.Playlist{{ID: 11, Title: "Deep Cuts"}}

		recs, err := h.service.RecommendationsFor(ctx, owner, owner.ID)
		require.NoError(t, err)
		assert.Len(t, recs.BasedOnGenres, 2)
		assert.Equal(t, []int64{4, 9}, h.social.seenGenres)
		assert.Equal(t, int64(11), recs.Playlists[0].ID)
	})

	t.Run("falls_back_to_most_liked", func(t *testing.T) {
		h := newHarness()
		h.social.mostLiked = []*playlist.Playlist{{ID: 20, Title: "Crowd Pleasers"}}

		recs, err := h.service.RecommendationsFor(ctx, owner, owner.ID)
		require.NoError(t, err)
		assert.Empty(t, recs.BasedOnGenres)
		assert.Equal(t, int64(20), recs.Playlists[0].ID)
	})

	t.Run("other_users_feed_forbidden", func(t *testing.T) {
		h := newHarness()
		_, err := h.service.RecommendationsFor(ctx, stranger, owner.ID)
		require.Error(t, err)
		assert.Equal(t, "You can only view your own recommendations", apperr.As(err).Message)
	})

	t.Run("admin_may_inspect_any_feed", func(t *testing.T) {
		h := newHarness()
		_, err := h.service.RecommendationsFor(ctx, admin, owner.ID)
		assert.NoError(t, err)
	})
}

/*
TestFeedLimitClamping verifies requested feed sizes are normalized.
*/
func TestFeedLimitClamping(t *testing.T) {
	h := newHarness()
	ctx := context.Background()

	_, err := h.service.Trending(ctx, 0)
	require.NoError(t, err)
	assert.Equal(t, 10, h.social.lastLimit)

	_, err = h.service.Newest(ctx, 500)
	require.NoError(t, err)
	assert.Equal(t, 50, h.social.lastLimit)

	_, err = h.service.Newest(ctx, 25)
	require.NoError(t, err)
	assert.Equal(t, 25, h.social.lastLimit)
}
