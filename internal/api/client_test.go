package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/stefankummer/promptpocket/internal/errors"
)

func TestGetUser_SendsBearerToken(t *testing.T) {
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"data":{"id":7,"name":"Ada"}}`))
	}))
	defer server.Close()

	c := New(server.URL, "ppk_token")
	u, err := c.GetUser(context.Background())
	require.NoError(t, err)
	require.Equal(t, "Bearer ppk_token", gotAuth)
	require.Equal(t, "Ada", u.Name)
	require.Equal(t, "Ada", u.DisplayName())
}

func TestGetUser_TokenExpired(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"message":"Token expired"}`))
	}))
	defer server.Close()

	c := New(server.URL, "ppk_stale")
	_, err := c.GetUser(context.Background())
	require.Error(t, err)
	require.True(t, errors.Is(err, errors.ErrService))
	require.Contains(t, err.Error(), "Token expired")
}

func TestGetUser_ErrorWithoutMessage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	c := New(server.URL, "ppk_token")
	_, err := c.GetUser(context.Background())
	require.Error(t, err)
	require.Contains(t, err.Error(), "HTTP error 502")
}

func TestCreatePrompt_Body(t *testing.T) {
	var got map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/prompts", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Write([]byte(`{"data":{"id":1}}`))
	}))
	defer server.Close()

	c := New(server.URL, "ppk_token")
	err := c.CreatePrompt(context.Background(), PromptCreate{
		Title:    "Explain quantum entanglement in simple terms",
		Content:  "Explain quantum entanglement in simple terms",
		Status:   "published",
		IsPublic: false,
		Notes:    "Saved from: https://physics.example/entanglement",
	})
	require.NoError(t, err)

	require.Equal(t, "Explain quantum entanglement in simple terms", got["title"])
	require.Equal(t, false, got["is_public"])
	require.Contains(t, got["notes"], "https://physics.example/entanglement")
	// Optional fields stay out of the body entirely when empty.
	_, hasDesc := got["description"]
	require.False(t, hasDesc)
	_, hasTools := got["ai_tools"]
	require.False(t, hasTools)
}

func TestListToolsAndTags(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/tools":
			w.Write([]byte(`{"data":[{"name":"Claude","is_public":true}]}`))
		case "/tags":
			w.Write([]byte(`{"data":[{"name":"physics","is_public":false},{"name":"writing","is_public":true}]}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	c := New(server.URL, "ppk_token")

	tools, err := c.ListTools(context.Background())
	require.NoError(t, err)
	require.Len(t, tools, 1)
	require.Equal(t, "Claude", tools[0].Name)
	require.True(t, tools[0].IsPublic)

	tags, err := c.ListTags(context.Background())
	require.NoError(t, err)
	require.Len(t, tags, 2)
	require.Equal(t, "physics", tags[0].Name)
}

func TestNew_StripsTrailingSlash(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/user", r.URL.Path)
		w.Write([]byte(`{"data":{}}`))
	}))
	defer server.Close()

	c := New(server.URL+"/", "tok")
	_, err := c.GetUser(context.Background())
	require.NoError(t, err)
}

func TestTransportError(t *testing.T) {
	c := New("http://127.0.0.1:0", "tok")
	_, err := c.GetUser(context.Background())
	require.Error(t, err)
	require.True(t, errors.Is(err, errors.ErrService))
}
