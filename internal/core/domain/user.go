package domain

import (
	"strings"
	"time"
)

// User est l'entité persistée : la clé vient du provider d'identité,
// on lui fait confiance telle quelle (opaque).
type User struct {
	Key          string
	Name         string
	Bio          string
	ProfileImage string
	CoverImage   string
	CreatedAt    time.Time
}

// Profile est la vue exposée : l'entité plus les deux projections du graphe.
// Followers/Following ne sont JAMAIS stockés ici, ils dérivent du edge set
// canonique au moment de la lecture.
type Profile struct {
	User
	Followers []string
	Following []string
}

// NewUser valide les invariants et crée l'entité.
// Seul moyen propre de créer un user (validation + timestamp UTC).
func NewUser(key, name, bio, profileImage, coverImage string) (*User, error) {
	if strings.TrimSpace(name) == "" {
		return nil, ErrEmptyName
	}
	return &User{
		Key:          key,
		Name:         strings.TrimSpace(name),
		Bio:          bio,
		ProfileImage: profileImage,
		CoverImage:   coverImage,
		CreatedAt:    time.Now().UTC(),
	}, nil
}

// UpdateProfile remplace les champs mutables. CreatedAt et la clé ne bougent pas.
func (u *User) UpdateProfile(name, bio, profileImage, coverImage string) error {
	if strings.TrimSpace(name) == "" {
		return ErrEmptyName
	}
	u.Name = strings.TrimSpace(name)
	u.Bio = bio
	u.ProfileImage = profileImage
	u.CoverImage = coverImage
	return nil
}

// MatchesQuery : recherche insensible à la casse sur nom et bio.
func (u *User) MatchesQuery(query string) bool {
	q := strings.ToLower(query)
	return strings.Contains(strings.ToLower(u.Name), q) ||
		strings.Contains(strings.ToLower(u.Bio), q)
}

// RelationStatus décrit les deux sens d'une relation pour un couple (actor, target).
type RelationStatus struct {
	IsFollowing  bool // actor suit target
	IsFollowedBy bool // target suit actor
}
