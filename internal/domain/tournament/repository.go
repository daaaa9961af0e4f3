package tournament

import "context"

// Repository describes tournament persistence needs from use cases.
type Repository interface {
	// List orders by start date descending with undated tournaments last.
	List(ctx context.Context) ([]Tournament, error)
	GetByID(ctx context.Context, tournamentID int64) (Tournament, bool, error)
	Create(ctx context.Context, item Tournament) (Tournament, error)
	Update(ctx context.Context, item Tournament) (Tournament, error)
	Delete(ctx context.Context, tournamentID int64) error
}
