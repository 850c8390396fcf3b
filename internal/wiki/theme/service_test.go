// Copyright (c) 2026 Scrib. All rights reserved.
// Author: m.goullet@scrib.dev

package theme

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mgoullet/scrib/internal/platform/apperr"
)

// fakeRepository is an in-memory Repository.
type fakeRepository struct {
	themesByID map[int]*Theme
	nextID     int
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{themesByID: map[int]*Theme{}, nextID: 1}
}

func (repo *fakeRepository) FindByID(_ context.Context, id int) (*Theme, error) {
	if theme, ok := repo.themesByID[id]; ok {
		return theme, nil
	}
	return nil, ErrThemeNotFound
}

func (repo *fakeRepository) List(_ context.Context) ([]*Theme, error) {
	themes := make([]*Theme, 0, len(repo.themesByID))
	for _, theme := range repo.themesByID {
		themes = append(themes, theme)
	}
	return themes, nil
}

func (repo *fakeRepository) Create(_ context.Context, theme *Theme) error {
	theme.ID = repo.nextID
	repo.nextID++
	repo.themesByID[theme.ID] = theme
	return nil
}

func (repo *fakeRepository) Update(_ context.Context, theme *Theme) error {
	if _, ok := repo.themesByID[theme.ID]; !ok {
		return ErrThemeNotFound
	}
	repo.themesByID[theme.ID] = theme
	return nil
}

func (repo *fakeRepository) Delete(_ context.Context, id int) error {
	if _, ok := repo.themesByID[id]; !ok {
		return ErrThemeNotFound
	}
	delete(repo.themesByID, id)
	return nil
}

// fakeAdmins answers admin checks from a set.
type fakeAdmins struct {
	admins map[string]bool
}

func (checker *fakeAdmins) IsAdmin(_ context.Context, userID string) (bool, error) {
	return checker.admins[userID], nil
}

/*
TestThemes_AdminGate verifies every theme operation, reads included,
requires a live admin check.
*/
func TestThemes_AdminGate(t *testing.T) {
	admins := &fakeAdmins{admins: map[string]bool{"admin": true}}
	service := NewService(newFakeRepository(), admins)

	// 1. Non-admins are refused on every mutation.
	_, err := service.Create(context.Background(), "user-1", "History")
	assert.Equal(t, apperr.CodeForbidden, apperr.As(err).Code)

	// 2. Admins pass; the slug is derived from the name.
	theme, err := service.Create(context.Background(), "admin", "Computer Science")
	require.NoError(t, err)
	assert.Equal(t, "computer-science", theme.Slug)
	assert.NotZero(t, theme.ID)

	_, err = service.Update(context.Background(), "user-1", theme.ID, "CS")
	assert.Equal(t, apperr.CodeForbidden, apperr.As(err).Code)

	renamed, err := service.Update(context.Background(), "admin", theme.ID, "CS & Maths")
	require.NoError(t, err)
	assert.Equal(t, "cs-maths", renamed.Slug)

	// 3. Reads are gated the same way.
	themes, err := service.List(context.Background(), "admin")
	require.NoError(t, err)
	assert.Len(t, themes, 1)

	_, err = service.List(context.Background(), "user-1")
	assert.Equal(t, apperr.CodeForbidden, apperr.As(err).Code)

	found, err := service.Get(context.Background(), "admin", theme.ID)
	require.NoError(t, err)
	assert.Equal(t, "cs-maths", found.Slug)

	_, err = service.Get(context.Background(), "user-1", theme.ID)
	assert.Equal(t, apperr.CodeForbidden, apperr.As(err).Code)

	// 4. Revoking the role takes effect on the very next call.
	admins.admins["admin"] = false
	err = service.Delete(context.Background(), "admin", theme.ID)
	assert.Equal(t, apperr.CodeForbidden, apperr.As(err).Code)
}

/*
TestThemes_DeleteUnknown verifies deleting a missing theme is a not-found.
*/
func TestThemes_DeleteUnknown(t *testing.T) {
	service := NewService(newFakeRepository(), &fakeAdmins{admins: map[string]bool{"admin": true}})

	err := service.Delete(context.Background(), "admin", 99)
	assert.Equal(t, apperr.CodeNotFound, apperr.As(err).Code)
}
