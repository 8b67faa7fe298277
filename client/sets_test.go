package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrewpaige1/fliply-api/models"
)

func TestCreate_PostsSet(t *testing.T) {
	var got models.FlashcardSet
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/sets/create", r.URL.Path)
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"message":"Flashcard set created successfully","id":"s1"}`))
	}))
	defer srv.Close()

	c := NewSetsClient(srv.URL+"/", WithToken("tok"))
	id, err := c.Create(context.Background(), &models.FlashcardSet{
		ID:         "s1",
		Title:      "Bio",
		ClassCode:  "BIO101",
		Flashcards: []models.Flashcard{{Question: "Q", Answer: "A"}},
		UserID:     "u1",
	})
	require.NoError(t, err)
	assert.Equal(t, "s1", id)
	assert.Equal(t, "Bio", got.Title)
	assert.Equal(t, "u1", got.UserID)
	assert.Len(t, got.Flashcards, 1)
}

func TestUpdate_EscapesID(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/api/sets/update/a%2Fb", r.URL.EscapedPath())
		w.Write([]byte(`{"message":"Flashcard set updated successfully"}`))
	}))
	defer srv.Close()

	id, err := NewSetsClient(srv.URL).Update(context.Background(), "a/b", &models.FlashcardSet{Title: "Bio"})
	require.NoError(t, err)
	assert.Equal(t, "a/b", id)
}

func TestGet(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/sets/s1", r.URL.Path)
		w.Write([]byte(`{"id":"s1","title":"Bio","classCode":"BIO101","flashcards":[{"question":"Q","answer":"A"}],"numCards":1}`))
	}))
	defer srv.Close()

	set, err := NewSetsClient(srv.URL).Get(context.Background(), "s1")
	require.NoError(t, err)
	assert.Equal(t, "Bio", set.Title)
	assert.Equal(t, 1, set.NumCards)
	assert.Equal(t, []models.Flashcard{{Question: "Q", Answer: "A"}}, set.Flashcards)
}

func TestAPIError_WithMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		w.Write([]byte(`{"message":"A set with this ID already exists"}`))
	}))
	defer srv.Close()

	_, err := NewSetsClient(srv.URL).Create(context.Background(), &models.FlashcardSet{ID: "s1"})
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusConflict, apiErr.StatusCode)
	assert.Equal(t, "409 Conflict", apiErr.Status)
	assert.Equal(t, "A set with this ID already exists", apiErr.Message)
}

func TestAPIError_WithoutMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("upstream down"))
	}))
	defer srv.Close()

	_, err := NewSetsClient(srv.URL).Get(context.Background(), "s1")
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "", apiErr.Message)
	assert.Equal(t, "502 Bad Gateway", apiErr.Error())
}

func TestTransportError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()

	_, err := NewSetsClient(srv.URL).Get(context.Background(), "s1")
	require.Error(t, err)
	var apiErr *APIError
	assert.False(t, errors.As(err, &apiErr))
}
