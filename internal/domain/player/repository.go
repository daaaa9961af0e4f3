package player

import "context"

// Repository describes player persistence needs from use cases.
type Repository interface {
	List(ctx context.Context) ([]Player, error)
	ListByTeam(ctx context.Context, teamID int64, limit int) ([]Player, error)
	GetByID(ctx context.Context, playerID int64) (Player, bool, error)
	GetByIDs(ctx context.Context, playerIDs []int64) ([]Player, error)
	Create(ctx context.Context, item Player) (Player, error)
	Update(ctx context.Context, item Player) (Player, error)
	Delete(ctx context.Context, playerID int64) error
}
