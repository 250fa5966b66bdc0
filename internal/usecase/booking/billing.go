package booking

import (
	"context"
	"errors"

	"github.com/google/uuid"

	domain "github.com/BruksfildServices01/tutor-scheduler/internal/domain/booking"
	"github.com/BruksfildServices01/tutor-scheduler/internal/domain/identity"
	"github.com/BruksfildServices01/tutor-scheduler/internal/models"
)

// billingIdentity resolves who pays for a booking. A parent pays for
// themselves. A student is billed to the account registered under their
// guardian email, or to themselves when there is none.
func billingIdentity(
	ctx context.Context,
	repo domain.Repository,
	caller identity.Caller,
	student *models.User,
) (uuid.UUID, error) {

	if caller.Role == identity.RoleParent {
		return caller.UserID, nil
	}

	if student.GuardianEmail == nil || *student.GuardianEmail == "" {
		return student.ID, nil
	}

	guardian, err := repo.FindUserByEmail(ctx, *student.GuardianEmail)
	if errors.Is(err, identity.ErrUserNotFound) {
		return student.ID, nil
	}
	if err != nil {
		return uuid.Nil, err
	}
	return guardian.ID, nil
}
