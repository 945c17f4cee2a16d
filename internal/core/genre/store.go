package genre

import "context"

type Repository interface {
	List(context context.Context) ([]*Genre, error)
	FindByID(context context.Context, id int64) (*Genre, error)
	FindByName(context context.Context, name string) (*Genre, error)
	Create(context context.Context, genre *Genre) error
	UpdateName(context context.Context, id int64, name string) error
	Delete(context context.Context, id int64) error
	CountPlaylists(context context.Context, id int64) (int, error)
}
