package service

import "errors"

var (
	// ErrSignatureInvalid means the body was not signed with the owner's
	// secret. The same body will never verify, so callers must not retry.
	ErrSignatureInvalid = errors.New("webhook signature invalid")
	// ErrSignatureMalformed is a hard rejection: the signature could not be
	// compared against a digest at all.
	ErrSignatureMalformed   = errors.New("webhook signature malformed")
	ErrMalformedPayload     = errors.New("malformed payload")
	ErrStorageUnavailable   = errors.New("storage unavailable")
	ErrTenantUnauthorized   = errors.New("tenant access denied")
	ErrIntegrationNotFound  = errors.New("integration not found")
	ErrIntegrationDisabled  = errors.New("integration disabled")
	ErrTeamAlreadyMapped    = errors.New("team already mapped to another tenant")
	ErrMappingOwnerMismatch = errors.New("tenant mappings must share one owner")
	ErrMappingNotFound      = errors.New("mapping not found")
	ErrInvalidInput         = errors.New("invalid input")
)
