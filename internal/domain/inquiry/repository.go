package inquiry

import "context"

// Repository stores inbound contact messages and job applications, newest first.
type Repository interface {
	CreateContactMessage(ctx context.Context, item ContactMessage) (ContactMessage, error)
	ListContactMessages(ctx context.Context, limit int) ([]ContactMessage, error)
	CreateApplication(ctx context.Context, item Application) (Application, error)
	ListApplications(ctx context.Context, jobSlug string, limit int) ([]Application, error)
}
