// Copyright (c) 2026 Scrib. All rights reserved.
// Author: m.goullet@scrib.dev

package comment

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mgoullet/scrib/internal/identity"
	"github.com/mgoullet/scrib/internal/platform/apperr"
	"github.com/mgoullet/scrib/pkg/pagination"
)

// fakeRepository mirrors the storage layer's owner-or-admin discipline.
// Insertion order stands in for creation timestamps.
type fakeRepository struct {
	commentsByID map[string]*Comment
	order        []string
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{commentsByID: map[string]*Comment{}}
}

func (repo *fakeRepository) FindByID(_ context.Context, id string) (*Comment, error) {
	if comment, ok := repo.commentsByID[id]; ok {
		copied := *comment
		return &copied, nil
	}
	return nil, ErrCommentNotFound
}

func (repo *fakeRepository) List(_ context.Context, page pagination.Params) ([]*Comment, int, error) {
	total := len(repo.order)

	// Newest first.
	var all []*Comment
	for index := total - 1; index >= 0; index-- {
		all = append(all, repo.commentsByID[repo.order[index]])
	}

	start := page.Offset()
	if start > total {
		start = total
	}
	end := start + page.Limit
	if end > total {
		end = total
	}

	return all[start:end], total, nil
}

func (repo *fakeRepository) ListForArticle(_ context.Context, articleID string) ([]*Comment, error) {
	var comments []*Comment
	for _, comment := range repo.commentsByID {
		if comment.ArticleID == articleID {
			comments = append(comments, comment)
		}
	}
	return comments, nil
}

func (repo *fakeRepository) Create(_ context.Context, comment *Comment) error {
	repo.commentsByID[comment.ID] = comment
	repo.order = append(repo.order, comment.ID)
	return nil
}

func (repo *fakeRepository) Update(_ context.Context, comment *Comment, callerID string, callerIsAdmin bool) error {
	stored, ok := repo.commentsByID[comment.ID]
	if !ok {
		return ErrCommentNotFound
	}
	if !identity.CanMutate(stored.OwnerID, callerID, callerIsAdmin) {
		return apperr.Forbidden("You are not allowed to modify this comment")
	}
	stored.Body = comment.Body
	return nil
}

func (repo *fakeRepository) Delete(_ context.Context, id string, callerID string, callerIsAdmin bool) error {
	stored, ok := repo.commentsByID[id]
	if !ok {
		return ErrCommentNotFound
	}
	if !identity.CanMutate(stored.OwnerID, callerID, callerIsAdmin) {
		return apperr.Forbidden("You are not allowed to modify this comment")
	}
	delete(repo.commentsByID, id)
	for index, orderedID := range repo.order {
		if orderedID == id {
			repo.order = append(repo.order[:index], repo.order[index+1:]...)
			break
		}
	}
	return nil
}

// fakeArticles answers existence checks from a set.
type fakeArticles struct {
	known map[string]bool
}

func (source *fakeArticles) Exists(_ context.Context, articleID string) (bool, error) {
	return source.known[articleID], nil
}

// fakeAdmins answers admin checks from a set.
type fakeAdmins struct {
	admins map[string]bool
}

func (checker *fakeAdmins) IsAdmin(_ context.Context, userID string) (bool, error) {
	return checker.admins[userID], nil
}

func newTestService(repo *fakeRepository, articles map[string]bool, admins map[string]bool) *Service {
	return NewService(repo, &fakeArticles{known: articles}, &fakeAdmins{admins: admins})
}

/*
TestCreate_RequiresArticle verifies comments can only target stored articles.
*/
func TestCreate_RequiresArticle(t *testing.T) {
	service := newTestService(newFakeRepository(), map[string]bool{"a-1": true}, nil)

	comment, err := service.Create(context.Background(), "user-1", "a-1", "First")
	require.NoError(t, err)
	assert.Equal(t, "user-1", comment.OwnerID)
	assert.Equal(t, "a-1", comment.ArticleID)

	_, err = service.Create(context.Background(), "user-1", "a-missing", "Orphan")
	require.Error(t, err)
	assert.Equal(t, apperr.CodeNotFound, apperr.As(err).Code)
}

/*
TestList_NewestFirstPaginated verifies the global comment feed pages newest
first with a stable total, and that single comments resolve by id.
*/
func TestList_NewestFirstPaginated(t *testing.T) {
	service := newTestService(newFakeRepository(), map[string]bool{"a-1": true}, nil)

	first, err := service.Create(context.Background(), "user-1", "a-1", "First")
	require.NoError(t, err)
	second, err := service.Create(context.Background(), "user-2", "a-1", "Second")
	require.NoError(t, err)
	third, err := service.Create(context.Background(), "user-1", "a-1", "Third")
	require.NoError(t, err)

	// 1. First page carries the newest two.
	comments, total, err := service.List(context.Background(), pagination.Params{Page: 1, Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, 3, total)
	require.Len(t, comments, 2)
	assert.Equal(t, third.ID, comments[0].ID)
	assert.Equal(t, second.ID, comments[1].ID)

	// 2. Second page carries the remainder.
	comments, total, err = service.List(context.Background(), pagination.Params{Page: 2, Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, 3, total)
	require.Len(t, comments, 1)
	assert.Equal(t, first.ID, comments[0].ID)

	// 3. Detail by id, with unknown ids a not-found.
	found, err := service.Get(context.Background(), second.ID)
	require.NoError(t, err)
	assert.Equal(t, "Second", found.Body)

	_, err = service.Get(context.Background(), "c-missing")
	assert.Equal(t, apperr.CodeNotFound, apperr.As(err).Code)
}

/*
TestMutate_OwnerOrAdmin verifies the owner-or-admin rule on comments, with
not-found and forbidden kept distinct.
*/
func TestMutate_OwnerOrAdmin(t *testing.T) {
	repo := newFakeRepository()
	service := newTestService(repo, map[string]bool{"a-1": true}, map[string]bool{"admin": true})

	comment, err := service.Create(context.Background(), "user-1", "a-1", "First")
	require.NoError(t, err)

	// 1. Stranger refused.
	_, err = service.Update(context.Background(), "user-2", comment.ID, "Defaced")
	require.Error(t, err)
	assert.Equal(t, apperr.CodeForbidden, apperr.As(err).Code)

	// 2. Owner may edit.
	updated, err := service.Update(context.Background(), "user-1", comment.ID, "First!")
	require.NoError(t, err)
	assert.Equal(t, "First!", updated.Body)

	// 3. Admin may delete; a repeat is a not-found.
	require.NoError(t, service.Delete(context.Background(), "admin", comment.ID))
	err = service.Delete(context.Background(), "admin", comment.ID)
	assert.Equal(t, apperr.CodeNotFound, apperr.As(err).Code)
}
