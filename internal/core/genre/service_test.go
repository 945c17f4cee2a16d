package genre_test

import (
	"context"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mixlist/mixlist/internal/audit"
	"github.com/mixlist/mixlist/internal/core/genre"
	"github.com/mixlist/mixlist/internal/platform/apperr"
	"github.com/mixlist/mixlist/internal/platform/dberr"
	"github.com/mixlist/mixlist/internal/platform/sec"
)

type fakeRepo struct {
	genres    map[int64]*genre.Genre
	playlists map[int64]int
	nextID    int64
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{genres: map[int64]*genre.Genre{}, playlists: map[int64]int{}}
}

func (repo *fakeRepo) List(ctx context.Context) ([]*genre.Genre, error) {
	result := make([]*genre.Genre, 0, len(repo.genres))
	for _, g := range repo.genres {
		result = append(result, g)
	}
	return result, nil
}

func (repo *fakeRepo) FindByID(ctx context.Context, id int64) (*genre.Genre, error) {
	g, ok := repo.genres[id]
	if !ok {
		return nil, dberr.ErrNotFound
	}
	return g, nil
}

func (repo *fakeRepo) FindByName(ctx context.Context, name string) (*genre.Genre, error) {
	for _, g := range repo.genres {
		if strings.EqualFold(g.Name, name) {
			return g, nil
		}
	}
	return nil, dberr.ErrNotFound
}

func (repo *fakeRepo) Create(ctx context.Context, g *genre.Genre) error {
	repo.nextID++
	g.ID = repo.nextID
	g.CreatedAt = time.Now()
	repo.genres[g.ID] = g
	return nil
}

func (repo *fakeRepo) UpdateName(ctx context.Context, id int64, name string) error {
	g, ok := repo.genres[id]
	if !ok {
		return dberr.ErrNotFound
	}
	g.Name = name
	return nil
}

func (repo *fakeRepo) Delete(ctx context.Context, id int64) error {
	if _, ok := repo.genres[id]; !ok {
		return dberr.ErrNotFound
	}
	delete(repo.genres, id)
	return nil
}

func (repo *fakeRepo) CountPlaylists(ctx context.Context, id int64) (int, error) {
	return repo.playlists[id], nil
}

// recordedAction captures Recorder calls for assertions.
type recordedAction struct {
	Action  audit.Action
	ActorID *int64
}

type fakeRecorder struct {
	actions []recordedAction
}

func (recorder *fakeRecorder) Record(ctx context.Context, action audit.Action, actorID, targetID *int64) {
	recorder.actions = append(recorder.actions, recordedAction{Action: action, ActorID: actorID})
}

func newService() (*genre.Service, *fakeRepo, *fakeRecorder) {
	repo := newFakeRepo()
	recorder := &fakeRecorder{}
	return genre.NewService(repo, recorder, slog.New(slog.DiscardHandler)), repo, recorder
}

var (
	manager       = &sec.Principal{ID: 3, Role: sec.RoleManagement}
	administrator = &sec.Principal{ID: 8, Role: sec.RoleAdministrator}
)

func TestCreate(t *testing.T) {
	service, _, recorder := newService()
	ctx := context.Background()

	g, err := service.Create(ctx, manager, "  Deep House  ")
	require.NoError(t, err)
	assert.Equal(t, "Deep House", g.Name)
	assert.Equal(t, manager.ID, *g.CreatedBy)

	require.Len(t, recorder.actions, 1)
	assert.Equal(t, audit.ActionGenreCreated, recorder.actions[0].Action)
}

func TestCreate_DuplicateName(t *testing.T) {
	service, _, _ := newService()
	ctx := context.Background()

	_, err := service.Create(ctx, manager, "Techno")
	require.NoError(t, err)

	// Case-insensitive duplicate.
	_, err = service.Create(ctx, manager, "techno")
	require.Error(t, err)
	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "CONFLICT", ae.Code)
	assert.Equal(t, "Genre already exists", ae.Message)
}

func TestCreate_InvalidName(t *testing.T) {
	service, _, recorder := newService()

	_, err := service.Create(context.Background(), manager, "   ")
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)
	assert.Empty(t, recorder.actions)
}

func TestUpdate(t *testing.T) {
	service, _, recorder := newService()
	ctx := context.Background()

	g, err := service.Create(ctx, manager, "Hose")
	require.NoError(t, err)

	updated, err := service.Update(ctx, manager, g.ID, "House")
	require.NoError(t, err)
	assert.Equal(t, "House", updated.Name)
	assert.Equal(t, audit.ActionGenreUpdated, recorder.actions[1].Action)
}

func TestUpdate_RenameToSelfAllowed(t *testing.T) {
	service, _, _ := newService()
	ctx := context.Background()

	g, err := service.Create(ctx, manager, "Ambient")
	require.NoError(t, err)

	// Renaming a genre to its own name is not a conflict.
	_, err = service.Update(ctx, manager, g.ID, "Ambient")
	assert.NoError(t, err)
}

func TestUpdate_NameTakenByOther(t *testing.T) {
	service, _, _ := newService()
	ctx := context.Background()

	_, err := service.Create(ctx, manager, "Jazz")
	require.NoError(t, err)
	g, err := service.Create(ctx, manager, "Jaz")
	require.NoError(t, err)

	_, err = service.Update(ctx, manager, g.ID, "Jazz")
	require.Error(t, err)
	assert.Equal(t, "Genre name already exists", apperr.As(err).Message)
}

func TestDelete(t *testing.T) {
	service, repo, recorder := newService()
	ctx := context.Background()

	g, err := service.Create(ctx, manager, "Disco")
	require.NoError(t, err)

	require.NoError(t, service.Delete(ctx, manager, g.ID))
	assert.Empty(t, repo.genres)
	assert.Equal(t, audit.ActionGenreDeleted, recorder.actions[1].Action)
}

func TestDelete_InUse(t *testing.T) {
	service, repo, _ := newService()
	ctx := context.Background()

	g, err := service.Create(ctx, manager, "Pop")
	require.NoError(t, err)
	repo.playlists[g.ID] = 4

	err = service.Delete(ctx, manager, g.ID)
	require.Error(t, err)
	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "CONFLICT", ae.Code)
	assert.Contains(t, ae.Message, "used by 4 playlist(s)")
}

func TestDelete_InUseByAdministrator(t *testing.T) {
	service, repo, _ := newService()
	ctx := context.Background()

	g, err := service.Create(ctx, manager, "Rock")
	require.NoError(t, err)
	repo.playlists[g.ID] = 2

	// Administrators hit the same dependency check as Management.
	err = service.Delete(ctx, administrator, g.ID)
	require.Error(t, err)
	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "CONFLICT", ae.Code)
	assert.Contains(t, ae.Message, "used by 2 playlist(s)")
}

func TestDelete_Missing(t *testing.T) {
	service, _, _ := newService()

	err := service.Delete(context.Background(), manager, 999)
	assert.ErrorIs(t, err, dberr.ErrNotFound)
}
