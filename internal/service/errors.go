// Package service holds the business rules that sit between the HTTP
// handlers and the stores: the reservation status workflow, the one review
// per user rule and credential checks.
package service

import "errors"

var (
	// ErrInvalidStatus is returned for a status outside the known set.
	ErrInvalidStatus = errors.New("invalid status")
	// ErrReasonRequired is returned when rejecting without a reason.
	ErrReasonRequired = errors.New("a reason is required to reject a reservation")
	// ErrIllegalTransition is returned in strict mode for a status change
	// the workflow does not allow.
	ErrIllegalTransition = errors.New("illegal status transition")
	// ErrForbidden is returned when a user reads a reservation they do not
	// own.
	ErrForbidden = errors.New("not authorized")
	// ErrReviewExists is returned for a second review by the same user.
	ErrReviewExists = errors.New("review already exists")
	// ErrInvalidReview is returned for a rating outside 1..5 or a missing
	// or oversized comment.
	ErrInvalidReview = errors.New("invalid review")
	// ErrInvalidCredentials hides whether the email or the password was
	// wrong.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrEmailTaken is returned when registering an existing email.
	ErrEmailTaken = errors.New("email already registered")
)
