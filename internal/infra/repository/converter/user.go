package converter

import (
	"hotel-booking/internal/domain/user"
	"hotel-booking/internal/infra/query"
	"hotel-booking/internal/pkg/pgconv"
)

func UserToCreateParams(u *user.User) query.CreateUserParams {
	return query.CreateUserParams{
		ID:           u.ID(),
		Email:        u.Email().Value(),
		FullName:     u.FullName(),
		PasswordHash: u.PasswordHash(),
		Role:         u.Role().String(),
		IsActive:     u.IsActive(),
		CreatedAt:    pgconv.TimeToPgtype(u.CreatedAt()),
	}
}
