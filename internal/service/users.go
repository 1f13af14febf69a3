package service

import (
	"context"
	"fmt"

	"github.com/ukydev/fleet-manager/internal/auth"
	"github.com/ukydev/fleet-manager/internal/db"
	"github.com/ukydev/fleet-manager/internal/models"
	"go.mongodb.org/mongo-driver/bson"
)

var hidePasswordHash = bson.M{"password_hash": 0}

// CreateUser stores a new user. No uniqueness is enforced on email.
func (s *Service) CreateUser(ctx context.Context, user models.User) (string, error) {
	user.ApplyDefaults()
	if err := s.validateStruct(user); err != nil {
		return "", err
	}
	doc, err := models.ToBSON(user)
	if err != nil {
		return "", err
	}
	if user.Password != "" {
		hash, err := s.auth.HashPassword(user.Password)
		if err != nil {
			return "", err
		}
		doc["password_hash"] = hash
	}
	return s.store.Create(ctx, s.collections.User, doc)
}

// ListUsers returns up to 200 users without their password hashes.
func (s *Service) ListUsers(ctx context.Context) ([]bson.M, error) {
	return s.store.List(ctx, s.collections.User, db.ListOptions{
		Limit:      broadListLimit,
		Projection: hidePasswordHash,
	})
}

// GetUser returns one user or ErrNotFound.
func (s *Service) GetUser(ctx context.Context, id string) (bson.M, error) {
	doc, err := s.store.Get(ctx, s.collections.User, id)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, fmt.Errorf("user %s: %w", id, ErrNotFound)
	}
	delete(doc, "password_hash")
	return doc, nil
}

// Login checks an email/password pair and issues a JWT.
func (s *Service) Login(ctx context.Context, req models.LoginRequest) (*models.LoginResponse, error) {
	if err := s.validateStruct(req); err != nil {
		return nil, err
	}
	users, err := s.store.List(ctx, s.collections.User, db.ListOptions{
		Filter: bson.M{"email": req.Email},
		Limit:  1,
	})
	if err != nil {
		return nil, err
	}
	if len(users) == 0 {
		return nil, auth.ErrInvalidCredentials
	}
	user := users[0]
	hash, _ := user["password_hash"].(string)
	if hash == "" || !s.auth.CheckPassword(req.Password, hash) {
		return nil, auth.ErrInvalidCredentials
	}

	id, _ := user["id"].(string)
	role := models.Role(fmt.Sprint(user["role"]))
	if !models.IsValidRole(role) {
		role = models.RoleManager
	}
	token, err := s.auth.GenerateToken(id, req.Email, role)
	if err != nil {
		return nil, fmt.Errorf("generate token: %w", err)
	}
	return &models.LoginResponse{Token: token, UserID: id, Role: role}, nil
}

// EnsureAdmin makes sure an admin account exists for email. A missing user is
// created with password; an existing one keeps its password and is promoted
// to admin when needed. It reports whether a user was created.
func (s *Service) EnsureAdmin(ctx context.Context, name, email, password string) (bool, error) {
	users, err := s.store.List(ctx, s.collections.User, db.ListOptions{
		Filter: bson.M{"email": email},
		Limit:  1,
	})
	if err != nil {
		return false, err
	}

	if len(users) == 0 {
		if password == "" {
			return false, invalidField("password", "required")
		}
		_, err := s.CreateUser(ctx, models.User{
			Name:     name,
			Email:    email,
			Role:     models.RoleAdmin,
			Password: password,
		})
		if err != nil {
			return false, err
		}
		return true, nil
	}

	existing := users[0]
	if existing["role"] == string(models.RoleAdmin) {
		return false, nil
	}
	id, _ := existing["id"].(string)
	if _, err := s.store.Update(ctx, s.collections.User, id, bson.M{"role": string(models.RoleAdmin)}); err != nil {
		return false, fmt.Errorf("promote %s: %w", email, err)
	}
	return false, nil
}

// ChangePassword replaces a user's password after checking the current one.
func (s *Service) ChangePassword(ctx context.Context, userID string, req models.ChangePasswordRequest) error {
	if err := s.validateStruct(req); err != nil {
		return err
	}
	user, err := s.store.Get(ctx, s.collections.User, userID)
	if err != nil {
		return err
	}
	if user == nil {
		return fmt.Errorf("user %s: %w", userID, ErrNotFound)
	}

	hash, _ := user["password_hash"].(string)
	if hash == "" || !s.auth.CheckPassword(req.CurrentPassword, hash) {
		return auth.ErrInvalidCredentials
	}

	newHash, err := s.auth.HashPassword(req.NewPassword)
	if err != nil {
		return err
	}
	modified, err := s.store.Update(ctx, s.collections.User, userID, bson.M{"password_hash": newHash})
	if err != nil {
		return err
	}
	if !modified {
		return fmt.Errorf("user %s: %w", userID, ErrNotFound)
	}
	return nil
}
