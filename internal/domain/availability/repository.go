package availability

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	// WithinTx runs fn against a repository bound to a single transaction.
	WithinTx(ctx context.Context, fn func(tx Repository) error) error

	// LockInstructor serialises availability writers for one instructor
	// until the surrounding transaction ends.
	LockInstructor(ctx context.Context, instructorID uuid.UUID) error

	InstructorExists(ctx context.Context, instructorID uuid.UUID) (bool, error)

	ListByInstructor(ctx context.Context, instructorID uuid.UUID, activeOnly bool) ([]Window, error)

	// ListActiveMatching returns active windows of the instructor sharing
	// the discriminator of when.
	ListActiveMatching(ctx context.Context, instructorID uuid.UUID, when Occurrence) ([]Window, error)

	Get(ctx context.Context, id uuid.UUID) (*Window, error)
	Create(ctx context.Context, w *Window) error
	Update(ctx context.Context, w *Window) error
	Delete(ctx context.Context, id uuid.UUID) error
}
