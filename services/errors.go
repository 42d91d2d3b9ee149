package services

import "errors"

// Sentinel errors returned by the services. Handlers map the *NotFound family
// to 404, the validation family to 400. Unique-constraint violations surface
// as gorm.ErrDuplicatedKey and are mapped to 400 as well.
var (
	ErrContentNotFound    = errors.New("content not found")
	ErrArticleNotFound    = errors.New("article not found")
	ErrSpotifyNotFound    = errors.New("spotify playlist not found")
	ErrListNotFound       = errors.New("list not found")
	ErrReunionNotFound    = errors.New("reunion not found")
	ErrAsignationNotFound = errors.New("asignation not found")

	// ErrAuthorNotFound is a validation error: the referenced author id in a
	// request body does not resolve.
	ErrAuthorNotFound = errors.New("author not found")

	// ErrNoAssignedUser rejects a transition to ready/para_publicar on an
	// entity that has nobody assigned.
	ErrNoAssignedUser = errors.New("transition requires an assigned user")

	// ErrNoUsers means the fallback-author lookup found an empty users table.
	ErrNoUsers = errors.New("no users available")
)
