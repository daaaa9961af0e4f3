package team

import "context"

// Repository describes team persistence needs from use cases.
type Repository interface {
	List(ctx context.Context) ([]Team, error)
	GetByID(ctx context.Context, teamID int64) (Team, bool, error)
	GetByIDs(ctx context.Context, teamIDs []int64) ([]Team, error)
	Create(ctx context.Context, item Team) (Team, error)
	Update(ctx context.Context, item Team) (Team, error)
	Delete(ctx context.Context, teamID int64) error
}
