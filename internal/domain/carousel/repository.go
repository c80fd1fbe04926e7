package carousel

import "context"

type Repository interface {
	List(ctx context.Context) ([]Image, error)
	Create(ctx context.Context, image *Image) error
	Delete(ctx context.Context, id string) error
}
