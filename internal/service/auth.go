package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/Skotchmaster/storefront/internal/models"
	"github.com/Skotchmaster/storefront/internal/repo"
	"github.com/Skotchmaster/storefront/internal/session"
	pkg_hash "github.com/Skotchmaster/storefront/pkg/hash"
	"github.com/Skotchmaster/storefront/pkg/logging"
	"github.com/Skotchmaster/storefront/pkg/mykafka"
)

type AuthService struct {
	Repo     *repo.GormRepo
	Sessions session.Store
	TTL      time.Duration
	Events   Publisher
}

// Authenticate checks the credentials and opens a fresh session with an
// empty cart. previousID, when set, is destroyed first.
func (s *AuthService) Authenticate(ctx context.Context, email, password, previousID string) (*session.Session, error) {
	l := logging.FromContext(ctx).With("svc", "auth.authenticate")

	user, err := s.Repo.FindUserByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	if !pkg_hash.CheckPassword(user.PasswordHash, password) {
		return nil, ErrInvalidCredentials
	}

	if previousID != "" {
		if err := s.Sessions.Delete(ctx, previousID); err != nil {
			l.Warn("drop_previous_session_failed", "error", err)
		}
	}

	sess := session.New(user.ID, user.Username, user.IsAdmin, s.TTL)
	if err := s.Sessions.Create(ctx, sess); err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}

	publish(ctx, s.Events, mykafka.TopicUserEvents, strconv.FormatUint(uint64(user.ID), 10), map[string]any{
		"type":     "user_logged_in",
		"userID":   user.ID,
		"username": user.Username,
	})
	return sess, nil
}

func (s *AuthService) Register(ctx context.Context, username, email, password string) (*models.User, error) {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)
	if username == "" || email == "" || password == "" {
		return nil, fmt.Errorf("username, email and password are required: %w", ErrValidation)
	}

	pwHash, err := pkg_hash.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &models.User{
		Username:     username,
		Email:        email,
		PasswordHash: pwHash,
	}
	if err := s.Repo.CreateUser(ctx, user); err != nil {
		if errors.Is(err, repo.ErrDuplicate) {
			return nil, ErrDuplicateAccount
		}
		return nil, err
	}

	publish(ctx, s.Events, mykafka.TopicUserEvents, strconv.FormatUint(uint64(user.ID), 10), map[string]any{
		"type":     "user_registered",
		"userID":   user.ID,
		"username": user.Username,
	})
	return user, nil
}

// RequireAdmin trusts the flag captured at login and never asks the
// database, so a promotion or demotion shows up only after a new login.
func (s *AuthService) RequireAdmin(sess *session.Session) error {
	if sess == nil {
		return ErrNotAuthenticated
	}
	if !sess.IsAdmin {
		return ErrForbidden
	}
	return nil
}

func (s *AuthService) Promote(ctx context.Context, email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return fmt.Errorf("email is required: %w", ErrValidation)
	}

	n, err := s.Repo.SetAdminByEmail(ctx, email, true)
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrUserNotFound
	}

	publish(ctx, s.Events, mykafka.TopicUserEvents, email, map[string]any{
		"type":  "user_promoted",
		"email": email,
	})
	return nil
}

// Session resolves a session id. Missing and expired records both read as
// ErrNotAuthenticated.
func (s *AuthService) Session(ctx context.Context, id string) (*session.Session, error) {
	sess, err := s.Sessions.Get(ctx, id)
	if err != nil {
		if errors.Is(err, session.ErrNotFound) {
			return nil, ErrNotAuthenticated
		}
		return nil, fmt.Errorf("load session: %w", err)
	}
	return sess, nil
}

func (s *AuthService) Logout(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return nil
	}
	if err := s.Sessions.Delete(ctx, sessionID); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}
