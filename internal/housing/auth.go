package housing

import (
	"context"

	"hostel-booking-backend/internal/model"
)

// Caller is the authenticated address invoking an operation.
type Caller string

// requireOwner is the single authorization check: the caller must be the
// address stored as the object's owner.
func requireOwner(caller Caller, owner string, reason error) error {
	if caller == "" || string(caller) != owner {
		return reason
	}
	return nil
}

// AuthorizeStudent loads a student and checks that caller owns it. It guards
// student-scoped resources kept outside the service, like push subscriptions.
func (s *Service) AuthorizeStudent(ctx context.Context, caller Caller, studentID string) (*model.Student, error) {
	student, err := s.store.Student(ctx, studentID)
	if err != nil {
		return nil, err
	}
	if err := requireOwner(caller, student.OwnerAddress, ErrNotStudentOwner); err != nil {
		return nil, err
	}
	return student, nil
}
