package genre

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/mixlist/mixlist/internal/audit"
	"github.com/mixlist/mixlist/internal/platform/apperr"
	"github.com/mixlist/mixlist/internal/platform/sec"
	"github.com/mixlist/mixlist/internal/platform/validate"
)

type Service struct {
	repo     Repository
	recorder audit.Recorder
	logger   *slog.Logger
}

func NewService(repo Repository, recorder audit.Recorder, logger *slog.Logger) *Service {
	return &Service{
		repo:     repo,
		recorder: recorder,
		logger:   logger,
	}
}

func (service *Service) List(context context.Context) ([]*Genre, error) {
	return service.repo.List(context)
}

func (service *Service) Get(context context.Context, id int64) (*Genre, error) {
	return service.repo.FindByID(context, id)
}

func (service *Service) Create(ctx context.Context, actor *sec.Principal, name string) (*Genre, error) {
	name, err := validName(name)
	if err != nil {
		return nil, err
	}

	if _, err := service.repo.FindByName(ctx, name); err == nil {
		return nil, apperr.Conflict("Genre already exists")
	}

	g := &Genre{
		Name:      name,
		CreatedBy: &actor.ID,
	}
	if err := service.repo.Create(ctx, g); err != nil {
		return nil, err
	}

	service.recorder.Record(ctx, audit.ActionGenreCreated, &actor.ID, &g.ID)

	return g, nil
}

func (service *Service) Update(ctx context.Context, actor *sec.Principal, id int64, name string) (*Genre, error) {
	name, err := validName(name)
	if err != nil {
		return nil, err
	}

	if _, err := service.repo.FindByID(ctx, id); err != nil {
		return nil, err
	}

	if other, err := service.repo.FindByName(ctx, name); err == nil && other.ID != id {
		return nil, apperr.Conflict("Genre name already exists")
	}

	if err := service.repo.UpdateName(ctx, id, name); err != nil {
		return nil, err
	}

	service.recorder.Record(ctx, audit.ActionGenreUpdated, &actor.ID, &id)

	return service.repo.FindByID(ctx, id)
}

// Delete removes a genre. Genres still attached to playlists cannot be
// deleted; the caller has to detach them first.
func (service *Service) Delete(ctx context.Context, actor *sec.Principal, id int64) error {
	if _, err := service.repo.FindByID(ctx, id); err != nil {
		return err
	}

	count, err := service.repo.CountPlaylists(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return apperr.Conflict(fmt.Sprintf(
			"Cannot delete genre. It is used by %d playlist(s). Remove genre from playlists first.", count))
	}

	if err := service.repo.Delete(ctx, id); err != nil {
		return err
	}

	service.recorder.Record(ctx, audit.ActionGenreDeleted, &actor.ID, &id)

	return nil
}

func validName(name string) (string, error) {
	name = strings.TrimSpace(name)

	v := &validate.Validator{}
	v.Required("name", name).MaxLen("name", name, MaxNameLength)
	if err := v.Err(); err != nil {
		return "", err
	}

	return name, nil
}
