package domain

import "errors"

// --- ERREURS DU DOMAINE ---
// Chaque précondition documentée du contrat a sa sentinelle.
// Les adapters traduisent leurs erreurs techniques (pgx, neo4j) vers celles-ci.
var (
	// Entités absentes
	ErrUserNotFound         = errors.New("user not found")
	ErrPostNotFound         = errors.New("post not found")
	ErrNotificationNotFound = errors.New("notification not found")

	// Gardes anti-doublon
	ErrAlreadyRegistered = errors.New("user already registered")
	ErrAlreadyFollowing  = errors.New("already following this user")
	ErrAlreadyReposted   = errors.New("post already reposted")

	// État / autorisation
	ErrNotRegistered = errors.New("caller is not registered")
	ErrNotFollowing  = errors.New("not following this user")
	ErrNotOwner      = errors.New("caller does not own this resource")
	ErrSelfFollow    = errors.New("cannot follow yourself")

	// Messagerie : il faut un lien de follow dans au moins un sens
	ErrMessagingGated = errors.New("you can only message users you follow or who follow you")

	// Entrées invalides (champ requis vide après trim)
	ErrEmptyName    = errors.New("name cannot be empty")
	ErrEmptyPost    = errors.New("post must have content, image, or video")
	ErrEmptyComment = errors.New("comment cannot be empty")
	ErrEmptyMessage = errors.New("message cannot be empty")
)

// IsInvalidInput regroupe les erreurs de validation pour le mapping HTTP.
func IsInvalidInput(err error) bool {
	return errors.Is(err, ErrEmptyName) ||
		errors.Is(err, ErrEmptyPost) ||
		errors.Is(err, ErrEmptyComment) ||
		errors.Is(err, ErrEmptyMessage)
}
