package readstore

import (
	"context"

	"hotel-booking/internal/infra"
	"hotel-booking/internal/infra/query"
	"hotel-booking/internal/usecase/queries"

	"github.com/google/uuid"
)

type UserViewQueries interface {
	GetUserByID(ctx context.Context, db query.DBTX, id uuid.UUID) (query.User, error)
	GetUserByEmail(ctx context.Context, db query.DBTX, email string) (query.User, error)
}

type UserReadStore struct {
	queries UserViewQueries
	db      query.DBTX
}

func NewUserReadStore(queries UserViewQueries, db query.DBTX) *UserReadStore {
	return &UserReadStore{
		queries: queries,
		db:      db,
	}
}

func (r *UserReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.AuthorizedUserView, error) {
	row, err := r.queries.GetUserByID(ctx, r.db, id)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find user by ID", err)
	}
	return toUserView(row)
}

func (r *UserReadStore) FindByEmail(ctx context.Context, email string) (*queries.AuthorizedUserView, string, error) {
	row, err := r.queries.GetUserByEmail(ctx, r.db, email)
	if err != nil {
		return nil, "", infra.WrapRepoErr("failed to find user by email", err)
	}
	view, err := toUserView(row)
	if err != nil {
		return nil, "", err
	}
	return view, row.PasswordHash, nil
}

func toUserView(row query.User) (*queries.AuthorizedUserView, error) {
	var view queries.AuthorizedUserView
	if err := copyView(&view, &row); err != nil {
		return nil, err
	}
	return &view, nil
}
