// Copyright (c) 2026 Scrib. All rights reserved.
// Author: m.goullet@scrib.dev

package article

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mgoullet/scrib/internal/identity"
	"github.com/mgoullet/scrib/internal/platform/apperr"
	"github.com/mgoullet/scrib/internal/wiki/comment"
	"github.com/mgoullet/scrib/pkg/pagination"
)

// fakeRepository is an in-memory Repository that mirrors the storage layer's
// owner-or-admin discipline.
type fakeRepository struct {
	articlesByID map[string]*Article
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{articlesByID: map[string]*Article{}}
}

func (repo *fakeRepository) FindByID(_ context.Context, id string) (*Article, error) {
	if article, ok := repo.articlesByID[id]; ok {
		copied := *article
		return &copied, nil
	}
	return nil, ErrArticleNotFound
}

func (repo *fakeRepository) List(_ context.Context, page pagination.Params) ([]*Article, int, error) {
	articles := make([]*Article, 0, len(repo.articlesByID))
	for _, article := range repo.articlesByID {
		articles = append(articles, article)
	}
	return articles, len(articles), nil
}

func (repo *fakeRepository) Create(_ context.Context, article *Article) error {
	repo.articlesByID[article.ID] = article
	return nil
}

func (repo *fakeRepository) Update(_ context.Context, article *Article, callerID string, callerIsAdmin bool) error {
	stored, ok := repo.articlesByID[article.ID]
	if !ok {
		return ErrArticleNotFound
	}
	if !identity.CanMutate(stored.OwnerID, callerID, callerIsAdmin) {
		return apperr.Forbidden("You are not allowed to modify this article")
	}

	stored.Title = article.Title
	stored.Slug = article.Slug
	stored.Body = article.Body
	stored.Priority = article.Priority
	stored.ThemeID = article.ThemeID
	return nil
}

func (repo *fakeRepository) Delete(_ context.Context, id string, callerID string, callerIsAdmin bool) error {
	stored, ok := repo.articlesByID[id]
	if !ok {
		return ErrArticleNotFound
	}
	if !identity.CanMutate(stored.OwnerID, callerID, callerIsAdmin) {
		return apperr.Forbidden("You are not allowed to modify this article")
	}
	delete(repo.articlesByID, id)
	return nil
}

// fakeComments serves a fixed comment list.
type fakeComments struct {
	comments []*comment.Comment
}

func (source *fakeComments) ListForArticle(_ context.Context, _ string) ([]*comment.Comment, error) {
	return source.comments, nil
}

// fakeAdmins answers admin checks from a set.
type fakeAdmins struct {
	admins map[string]bool
}

func (checker *fakeAdmins) IsAdmin(_ context.Context, userID string) (bool, error) {
	return checker.admins[userID], nil
}

func newTestService(repo *fakeRepository, admins map[string]bool) *Service {
	return NewService(repo, &fakeComments{}, &fakeAdmins{admins: admins})
}

func sampleInput() Input {
	return Input{Title: "Persistent Data Structures", Body: "...", Priority: PriorityMedium, ThemeID: 1}
}

/*
TestCreate_OwnershipFromCaller verifies the owner is taken from the
authenticated identity and the slug is derived from the title.
*/
func TestCreate_OwnershipFromCaller(t *testing.T) {
	service := newTestService(newFakeRepository(), nil)

	article, err := service.Create(context.Background(), "user-1", sampleInput())
	require.NoError(t, err)

	assert.Equal(t, "user-1", article.OwnerID)
	assert.Equal(t, "persistent-data-structures", article.Slug)
	assert.NotEmpty(t, article.ID)
}

/*
TestMutate_OwnerOrAdmin verifies the full ownership scenario: the owner may
update, a stranger is refused, an administrator may delete, and a second
delete reports not-found rather than forbidden.
*/
func TestMutate_OwnerOrAdmin(t *testing.T) {
	repo := newFakeRepository()
	service := newTestService(repo, map[string]bool{"user-3": true})

	article, err := service.Create(context.Background(), "user-1", sampleInput())
	require.NoError(t, err)

	// 1. A non-owner, non-admin caller is refused with a forbidden.
	input := sampleInput()
	input.Title = "Hijacked"
	_, err = service.Update(context.Background(), "user-2", article.ID, input)
	require.Error(t, err)
	assert.Equal(t, apperr.CodeForbidden, apperr.As(err).Code)

	// 2. The owner may update. The owner field never changes.
	input.Title = "Persistent Data Structures, Revised"
	updated, err := service.Update(context.Background(), "user-1", article.ID, input)
	require.NoError(t, err)
	assert.Equal(t, "user-1", updated.OwnerID)
	assert.Equal(t, "persistent-data-structures-revised", updated.Slug)

	// 3. An administrator may delete an article they do not own.
	require.NoError(t, service.Delete(context.Background(), "user-3", article.ID))

	// 4. Deleting again is a not-found, not a forbidden.
	err = service.Delete(context.Background(), "user-3", article.ID)
	require.Error(t, err)
	assert.Equal(t, apperr.CodeNotFound, apperr.As(err).Code)
}

/*
TestGet_HydratesComments verifies detail reads include the comment list.
*/
func TestGet_HydratesComments(t *testing.T) {
	repo := newFakeRepository()
	comments := &fakeComments{comments: []*comment.Comment{{ID: "c-1", Body: "Nice"}}}
	service := NewService(repo, comments, &fakeAdmins{})

	article, err := service.Create(context.Background(), "user-1", sampleInput())
	require.NoError(t, err)

	detail, err := service.Get(context.Background(), article.ID)
	require.NoError(t, err)
	require.Len(t, detail.Comments, 1)
	assert.Equal(t, "c-1", detail.Comments[0].ID)
}

/*
TestGet_Unknown verifies missing articles surface as not-found.
*/
func TestGet_Unknown(t *testing.T) {
	service := newTestService(newFakeRepository(), nil)

	_, err := service.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrArticleNotFound)
}
