// Copyright (c) 2026 Scrib. All rights reserved.
// Author: m.goullet@scrib.dev

package identity

import (
	"context"
	"time"

	"github.com/mgoullet/scrib/internal/platform/sec"
)

// fakeUserRepository is an in-memory UserRepository for service-level tests.
type fakeUserRepository struct {
	usersByID    map[string]*User
	claimsByID   map[string][]sec.Claim
	rolesByID    map[string][]string
	assignErr    error
	assignCalled int
}

func newFakeUserRepository() *fakeUserRepository {
	return &fakeUserRepository{
		usersByID:  map[string]*User{},
		claimsByID: map[string][]sec.Claim{},
		rolesByID:  map[string][]string{},
	}
}

func (repo *fakeUserRepository) FindByID(_ context.Context, id string) (*User, error) {
	if user, ok := repo.usersByID[id]; ok {
		return user, nil
	}
	return nil, ErrUserNotFound
}

func (repo *fakeUserRepository) FindByEmail(_ context.Context, email string) (*User, error) {
	for _, user := range repo.usersByID {
		if user.Email == email {
			return user, nil
		}
	}
	return nil, ErrUserNotFound
}

func (repo *fakeUserRepository) Create(_ context.Context, user *User) error {
	repo.usersByID[user.ID] = user
	return nil
}

func (repo *fakeUserRepository) List(_ context.Context) ([]*User, error) {
	users := make([]*User, 0, len(repo.usersByID))
	for _, user := range repo.usersByID {
		users = append(users, user)
	}
	return users, nil
}

func (repo *fakeUserRepository) UpdatePassword(_ context.Context, userID, newHash string) error {
	user, ok := repo.usersByID[userID]
	if !ok {
		return ErrUserNotFound
	}
	user.PasswordHash = newHash
	return nil
}

func (repo *fakeUserRepository) ClaimsOf(_ context.Context, userID string) ([]sec.Claim, error) {
	return repo.claimsByID[userID], nil
}

func (repo *fakeUserRepository) RolesOf(_ context.Context, userID string) ([]string, error) {
	return repo.rolesByID[userID], nil
}

func (repo *fakeUserRepository) HasRole(_ context.Context, userID, roleName string) (bool, error) {
	for _, name := range repo.rolesByID[userID] {
		if name == roleName {
			return true, nil
		}
	}
	return false, nil
}

func (repo *fakeUserRepository) AssignRole(_ context.Context, userID, roleName string) error {
	repo.assignCalled++
	if repo.assignErr != nil {
		return repo.assignErr
	}
	for _, name := range repo.rolesByID[userID] {
		if name == roleName {
			return nil
		}
	}
	repo.rolesByID[userID] = append(repo.rolesByID[userID], roleName)
	return nil
}

func (repo *fakeUserRepository) RemoveRole(_ context.Context, userID, roleName string) error {
	kept := repo.rolesByID[userID][:0]
	for _, name := range repo.rolesByID[userID] {
		if name != roleName {
			kept = append(kept, name)
		}
	}
	repo.rolesByID[userID] = kept
	return nil
}

// fakeRoleRepository is an in-memory RoleRepository.
type fakeRoleRepository struct {
	rolesByName map[string]*Role
}

func newFakeRoleRepository(roles ...*Role) *fakeRoleRepository {
	repo := &fakeRoleRepository{rolesByName: map[string]*Role{}}
	for _, role := range roles {
		repo.rolesByName[role.Name] = role
	}
	return repo
}

func (repo *fakeRoleRepository) FindByName(_ context.Context, name string) (*Role, error) {
	if role, ok := repo.rolesByName[name]; ok {
		return role, nil
	}
	return nil, ErrRoleNotFound
}

func (repo *fakeRoleRepository) Exists(_ context.Context, name string) (bool, error) {
	_, ok := repo.rolesByName[name]
	return ok, nil
}

func (repo *fakeRoleRepository) Create(_ context.Context, name string) error {
	repo.rolesByName[name] = &Role{Name: name}
	return nil
}

func (repo *fakeRoleRepository) List(_ context.Context) ([]*Role, error) {
	roles := make([]*Role, 0, len(repo.rolesByName))
	for _, role := range repo.rolesByName {
		roles = append(roles, role)
	}
	return roles, nil
}

// fakeResetTokenRepository is an in-memory ResetTokenRepository. TTLs are
// recorded but not enforced.
type fakeResetTokenRepository struct {
	userIDByHash map[string]string
	lastTTL      time.Duration
}

func newFakeResetTokenRepository() *fakeResetTokenRepository {
	return &fakeResetTokenRepository{userIDByHash: map[string]string{}}
}

func (repo *fakeResetTokenRepository) Set(_ context.Context, tokenHash, userID string, ttl time.Duration) error {
	repo.userIDByHash[tokenHash] = userID
	repo.lastTTL = ttl
	return nil
}

func (repo *fakeResetTokenRepository) Get(_ context.Context, tokenHash string) (string, error) {
	if userID, ok := repo.userIDByHash[tokenHash]; ok {
		return userID, nil
	}
	return "", ErrUserNotFound
}

func (repo *fakeResetTokenRepository) Delete(_ context.Context, tokenHash string) error {
	delete(repo.userIDByHash, tokenHash)
	return nil
}

// fakeIssuer records the claim set it was asked to sign.
type fakeIssuer struct {
	lastClaims sec.ClaimSet
}

func (issuer *fakeIssuer) Issue(claims sec.ClaimSet) (string, error) {
	issuer.lastClaims = claims
	return "signed-token", nil
}
