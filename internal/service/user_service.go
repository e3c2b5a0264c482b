package service

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"time"

	"notes-api/internal/domain"
	"notes-api/internal/repository"
	"notes-api/pkg/errors"
	"notes-api/pkg/logger"
	"notes-api/pkg/redis"
)

// userService implements the user directory on top of the user repository,
// with an optional Redis cache for profile reads.
type userService struct {
	users  repository.UserRepository
	cache  *redis.Client
	logger *logger.Logger
}

// NewUserService creates a new user service. cache may be nil; profile
// reads then go straight to the store.
func NewUserService(users repository.UserRepository, cache *redis.Client, logger *logger.Logger) UserService {
	return &userService{
		users:  users,
		cache:  cache,
		logger: logger,
	}
}

// FindOrCreate resolves an identity claim to a local user row. The insert
// is optimistic: when two first-logins race, the store's uniqueness
// constraint rejects the loser and the loser re-reads the winning row. No
// in-process lock is taken since multiple instances may run concurrently.
func (s *userService) FindOrCreate(ctx context.Context, claim *domain.IdentityClaim) (*domain.User, error) {
	if claim == nil || claim.Sub == "" || claim.Email == "" {
		return nil, errors.NewInternalError("Identity claim is missing required fields", nil)
	}

	log := s.logger.WithFields(map[string]interface{}{
		"subject": claim.Sub,
		"email":   claim.Email,
	})

	existing, err := s.users.GetByGoogleID(ctx, domain.ProviderGoogle, claim.Sub)
	if err != nil {
		log.WithError(err).Error("User lookup failed")
		return nil, errors.NewInternalError("Failed to look up user", err)
	}
	if existing != nil {
		// Repeat login: return the row unchanged, profile fields are not
		// overwritten here.
		return existing, nil
	}

	user := userFromClaim(claim)
	err = s.users.Create(ctx, user)
	if err == nil {
		log.WithField("user_id", user.ID).Info("User created")
		return user, nil
	}

	if stderrors.Is(err, repository.ErrDuplicateUser) {
		// Lost the first-login race; the winner's row is the canonical one.
		winner, readErr := s.users.GetByGoogleID(ctx, domain.ProviderGoogle, claim.Sub)
		if readErr != nil {
			log.WithError(readErr).Error("Re-read after insert conflict failed")
			return nil, errors.NewInternalError("Failed to look up user", readErr)
		}
		if winner == nil {
			return nil, errors.NewInternalError("User vanished after insert conflict", nil)
		}
		log.WithField("user_id", winner.ID).Debug("Insert lost first-login race, returning existing user")
		return winner, nil
	}

	log.WithError(err).Error("User creation failed")
	return nil, errors.NewInternalError("Failed to create user", err)
}

// GetByID retrieves a user's full profile with a cache-aside read when
// Redis is configured.
func (s *userService) GetByID(ctx context.Context, id string) (*domain.User, error) {
	if s.cache != nil {
		cacheKey := s.cache.KeyBuilder.KeyUserProfile(id)
		cached, err := s.cache.Get(ctx, cacheKey)
		if err == nil && cached != "" {
			var user domain.User
			if unmarshalErr := json.Unmarshal([]byte(cached), &user); unmarshalErr == nil {
				s.logger.WithField("user_id", id).Debug("User profile cache hit")
				return &user, nil
			}
			s.logger.WithField("user_id", id).Warn("User profile cache corrupted, falling back to database")
		} else if err != nil && !redis.IsNil(err) {
			s.logger.WithError(err).Warn("User profile cache error, falling back to database")
		}
	}

	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, errors.NewInternalError("Failed to look up user", err)
	}

	if user != nil && s.cache != nil {
		go s.cacheProfileAsync(id, user)
	}

	return user, nil
}

// cacheProfileAsync writes a profile row to the cache outside the request
// path. Failures only cost the next read a database round trip.
func (s *userService) cacheProfileAsync(id string, user *domain.User) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	payload, err := json.Marshal(user)
	if err != nil {
		return
	}

	if err := s.cache.Set(ctx, s.cache.KeyBuilder.KeyUserProfile(id), payload, redis.TTLUserProfile); err != nil {
		s.logger.WithError(err).Debug("Failed to cache user profile")
	}
}

// userFromClaim maps a verified identity claim onto a fresh user row.
// Empty optional fields stay NULL.
func userFromClaim(claim *domain.IdentityClaim) *domain.User {
	sub := claim.Sub
	user := &domain.User{
		Email:    claim.Email,
		GoogleID: &sub,
		Provider: domain.ProviderGoogle,
	}
	if claim.Name != "" {
		name := claim.Name
		user.Name = &name
	}
	if claim.AvatarURL != "" {
		avatar := claim.AvatarURL
		user.AvatarURL = &avatar
	}
	return user
}
