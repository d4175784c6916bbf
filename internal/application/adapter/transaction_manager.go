// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import "context"

// TransactionManager runs units of work atomically against the database.
type TransactionManager interface {
	// WithinTransaction runs fn inside a database transaction carried by the context
	// passed to fn. Repositories called with that context take part in the transaction.
	// A call made with a context already inside a transaction joins it.
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
