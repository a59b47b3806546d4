package github_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ghAdapter "github.com/gede-cahya/portfolio/internal/github"
	"github.com/gede-cahya/portfolio/internal/feed"
)

// newTestClient creates a Client backed by the given httptest handler.
func newTestClient(t *testing.T, handler http.Handler) *ghAdapter.Client {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := ghAdapter.NewClientWithHTTPClient(server.Client(), server.URL+"/")
	require.NoError(t, err)

	return client
}

// repoJSON is a helper struct for building GitHub API repository responses.
type repoJSON struct {
	Fork        bool     `json:"fork"`
	Name        string   `json:"name"`
	Description *string  `json:"description"`
	Language    *string  `json:"language"`
	Topics      []string `json:"topics"`
	Homepage    *string  `json:"homepage"`
	HTMLURL     string   `json:"html_url"`
	Stars       int      `json:"stargazers_count"`
}

func strPtr(s string) *string { return &s }

func TestListRepositories_RequestShape(t *testing.T) {
	var gotPath, gotSort, gotPerPage string

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotSort = r.URL.Query().Get("sort")
		gotPerPage = r.URL.Query().Get("per_page")
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `[]`)
	})

	client := newTestClient(t, handler)
	result, err := client.ListRepositories(context.Background(), "gede-cahya", 10)

	require.NoError(t, err)
	assert.Empty(t, result)
	assert.Equal(t, "/users/gede-cahya/repos", gotPath)
	assert.Equal(t, "updated", gotSort)
	assert.Equal(t, "10", gotPerPage)
}

func TestListRepositories_MapsFields(t *testing.T) {
	repos := []repoJSON{
		{
			Name:        "portfolio-site",
			Description: strPtr("My portfolio"),
			Language:    strPtr("Go"),
			Topics:      []string{"gin", "htmx"},
			Homepage:    strPtr("https://cahya.dev"),
			HTMLURL:     "https://github.com/gede-cahya/portfolio-site",
			Stars:       7,
		},
		{
			Fork:    true,
			Name:    "upstream-lib",
			HTMLURL: "https://github.com/gede-cahya/upstream-lib",
		},
	}

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(repos)
	})

	client := newTestClient(t, handler)
	result, err := client.ListRepositories(context.Background(), "gede-cahya", 10)

	require.NoError(t, err)
	require.Len(t, result, 2)

	assert.Equal(t, feed.RemoteRepository{
		Name:        "portfolio-site",
		Description: "My portfolio",
		Language:    "Go",
		Topics:      []string{"gin", "htmx"},
		Homepage:    "https://cahya.dev",
		HTMLURL:     "https://github.com/gede-cahya/portfolio-site",
		Stars:       7,
	}, result[0])

	// Nulls map to empty values; order is preserved.
	assert.True(t, result[1].Fork)
	assert.Equal(t, "upstream-lib", result[1].Name)
	assert.Empty(t, result[1].Description)
	assert.Empty(t, result[1].Language)
	assert.Empty(t, result[1].Homepage)
	assert.NotNil(t, result[1].Topics)
}

func TestListRepositories_Errors(t *testing.T) {
	testCases := []struct {
		name        string
		handlerFunc func(w http.ResponseWriter, r *http.Request)
	}{
		{
			name: "server error",
			handlerFunc: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
				fmt.Fprint(w, `{"message": "Internal Server Error"}`)
			},
		},
		{
			name: "unknown account",
			handlerFunc: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusNotFound)
				fmt.Fprint(w, `{"message": "Not Found"}`)
			},
		},
		{
			name: "malformed body",
			handlerFunc: func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				fmt.Fprint(w, `{"not": "an array"`)
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			client := newTestClient(t, http.HandlerFunc(tc.handlerFunc))

			result, err := client.ListRepositories(context.Background(), "gede-cahya", 10)

			require.Error(t, err)
			assert.Contains(t, err.Error(), "listing repositories for gede-cahya")
			assert.Nil(t, result)
		})
	}
}

func TestListRepositories_FeedErrorState(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	client := newTestClient(t, handler)

	snap := feed.New(client, feed.Options{}, nil).Load(context.Background())

	assert.Equal(t, feed.StateError, snap.State)
	assert.Equal(t, feed.ErrorMessage, snap.Error)
	assert.Empty(t, snap.Projects)
}

func TestNewClientWithHTTPClient_BadURL(t *testing.T) {
	_, err := ghAdapter.NewClientWithHTTPClient(http.DefaultClient, "://bad")
	assert.Error(t, err)
}

func TestNewClient(t *testing.T) {
	assert.NotNil(t, ghAdapter.NewClient(""))
	assert.NotNil(t, ghAdapter.NewClient("ghp_test"))
}
