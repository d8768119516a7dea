package roster

import "context"

// DataSource loads the full roster from the employee service.
//
// FetchAll returns ErrNotAuthorized when the credentials are rejected and an
// error wrapping ErrTransientFetch for any other failure.
type DataSource interface {
	FetchAll(ctx context.Context) ([]Record, error)
}

// Mutator changes records on the employee service.
//
// Each method reports whether the service accepted the change. A false result
// with a nil error means the service declined it.
type Mutator interface {
	Create(ctx context.Context, record Record) (bool, error)
	Update(ctx context.Context, record Record) (bool, error)
	Delete(ctx context.Context, id int) (bool, error)
}

// Backend is a collaborator that both loads and changes records.
type Backend interface {
	DataSource
	Mutator
}
