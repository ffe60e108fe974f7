package unitofwork

import "context"

// RepositoryFactory hands out one UnitOfWork per request or background job.
type RepositoryFactory interface {
	NewUnitOfWork(ctx context.Context) UnitOfWork
}
