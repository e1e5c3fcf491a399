package membership

import "membership-backend/internal/pkg/apperror"

var (
	ErrApplicationNotFound = apperror.New(apperror.KindNotFound, "Application not found")
	ErrMemberNotFound      = apperror.New(apperror.KindNotFound, "Member not found")
	ErrInviteInvalid       = apperror.New(apperror.KindInviteInvalid, "Invalid invite token")
	ErrInviteUsed          = apperror.New(apperror.KindInviteUsed, "Invite already used")
	ErrInviteExpired       = apperror.New(apperror.KindInviteExpired, "Invite expired")
	ErrMemberEmailTaken    = apperror.New(apperror.KindConflict, "Member with this email already exists")
)
