// Copyright (c) 2026 Scrib. All rights reserved.
// Author: m.goullet@scrib.dev

package comment

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mgoullet/scrib/pkg/pagination"
	"github.com/mgoullet/scrib/pkg/uuid"
)

/*
TestRoutes_ReadsAnonymous verifies the comment feed and detail endpoints
serve unauthenticated requests, while malformed and unknown ids stay
distinguishable.
*/
func TestRoutes_ReadsAnonymous(t *testing.T) {
	service := newTestService(newFakeRepository(), map[string]bool{"a-1": true}, nil)

	created, err := service.Create(context.Background(), "user-1", "a-1", "First")
	require.NoError(t, err)

	server := httptest.NewServer(NewHandler(service).Routes())
	defer server.Close()

	// 1. The feed answers without a token.
	response, err := http.Get(server.URL + "/")
	require.NoError(t, err)
	defer response.Body.Close()
	require.Equal(t, http.StatusOK, response.StatusCode)

	var envelope struct {
		Data []*Comment      `json:"data"`
		Meta pagination.Meta `json:"meta"`
	}
	require.NoError(t, json.NewDecoder(response.Body).Decode(&envelope))
	require.Len(t, envelope.Data, 1)
	assert.Equal(t, created.ID, envelope.Data[0].ID)
	assert.Equal(t, 1, envelope.Meta.Total)

	// 2. Detail by id.
	detail, err := http.Get(server.URL + "/" + created.ID)
	require.NoError(t, err)
	detail.Body.Close()
	assert.Equal(t, http.StatusOK, detail.StatusCode)

	// 3. Malformed id fails validation before storage is touched.
	malformed, err := http.Get(server.URL + "/not-a-uuid")
	require.NoError(t, err)
	malformed.Body.Close()
	assert.Equal(t, http.StatusBadRequest, malformed.StatusCode)

	// 4. Unknown id is a not-found.
	missing, err := http.Get(server.URL + "/" + uuid.New())
	require.NoError(t, err)
	missing.Body.Close()
	assert.Equal(t, http.StatusNotFound, missing.StatusCode)
}
