package services

import (
	"context"
	"fmt"

	"github.com/soliva-social/soliva/internal/core/domain"
	"github.com/soliva-social/soliva/internal/core/ports"
)

// profileService tient le Profile Store : une entité par clé utilisateur,
// les sets follower/following sont projetés depuis le graphe à la lecture.
type profileService struct {
	users ports.UserRepository
	graph ports.GraphRepository
}

func NewProfileService(users ports.UserRepository, graph ports.GraphRepository) ports.ProfileService {
	return &profileService{users: users, graph: graph}
}

func (s *profileService) Register(ctx context.Context, caller string, cmd ports.ProfileCmd) (*domain.Profile, error) {
	user, err := domain.NewUser(caller, cmd.Name, cmd.Bio, cmd.ProfileImage, cmd.CoverImage)
	if err != nil {
		return nil, err
	}
	// La garde anti-double-inscription vit dans le repository (contrainte
	// d'unicité côté SQL, check sous mutex côté mémoire).
	if err := s.users.Save(ctx, user); err != nil {
		return nil, err
	}
	return &domain.Profile{User: *user, Followers: []string{}, Following: []string{}}, nil
}

func (s *profileService) Update(ctx context.Context, caller string, cmd ports.ProfileCmd) (*domain.Profile, error) {
	user, err := s.users.Get(ctx, caller)
	if err != nil {
		return nil, err
	}
	if err := user.UpdateProfile(cmd.Name, cmd.Bio, cmd.ProfileImage, cmd.CoverImage); err != nil {
		return nil, err
	}
	if err := s.users.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("update profile: %w", err)
	}
	return s.project(ctx, user)
}

func (s *profileService) Get(ctx context.Context, userKey string) (*domain.Profile, error) {
	user, err := s.users.Get(ctx, userKey)
	if err != nil {
		return nil, err
	}
	return s.project(ctx, user)
}

func (s *profileService) ListAll(ctx context.Context) ([]*domain.Profile, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, err
	}
	return s.projectAll(ctx, users)
}

func (s *profileService) Search(ctx context.Context, query string) ([]*domain.Profile, error) {
	users, err := s.users.Search(ctx, query)
	if err != nil {
		return nil, err
	}
	return s.projectAll(ctx, users)
}

// project attache les deux vues dérivées du edge set canonique.
func (s *profileService) project(ctx context.Context, user *domain.User) (*domain.Profile, error) {
	followers, err := s.graph.Followers(ctx, user.Key)
	if err != nil {
		return nil, fmt.Errorf("project followers: %w", err)
	}
	following, err := s.graph.Following(ctx, user.Key)
	if err != nil {
		return nil, fmt.Errorf("project following: %w", err)
	}
	return &domain.Profile{User: *user, Followers: followers, Following: following}, nil
}

func (s *profileService) projectAll(ctx context.Context, users []*domain.User) ([]*domain.Profile, error) {
	profiles := make([]*domain.Profile, 0, len(users))
	for _, u := range users {
		p, err := s.project(ctx, u)
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, p)
	}
	return profiles, nil
}
