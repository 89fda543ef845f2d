package wordpress

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TheCodeCompany/tcc-wp-to-contentful/internal/core/domain"
)

// newPostsServer serves a synthetic posts collection of the given size,
// honouring per_page and page the way WordPress does, and records every
// per_page value it sees.
func newPostsServer(t *testing.T, total int, perPageSeen *[]int, requests *int) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, pathPosts, r.URL.Path)

		perPage, err := strconv.Atoi(r.URL.Query().Get("per_page"))
		require.NoError(t, err)
		page, err := strconv.Atoi(r.URL.Query().Get("page"))
		require.NoError(t, err)

		*requests++
		*perPageSeen = append(*perPageSeen, perPage)

		offset := (page - 1) * perPage
		var posts []domain.RawPost
		for i := offset; i < offset+perPage && i < total; i++ {
			posts = append(posts, domain.RawPost{ID: i + 1, Slug: fmt.Sprintf("post-%d", i+1)})
		}

		w.Header().Set(HeaderTotal, strconv.Itoa(total))
		w.Header().Set("Content-Type", "application/json")
		require.NoError(t, json.NewEncoder(w).Encode(posts))
	}))
}

func TestClient_Posts_PaginatesToMax(t *testing.T) {
	var perPages []int
	var requests int
	srv := newPostsServer(t, 1000, &perPages, &requests)
	defer srv.Close()

	posts, err := NewClient(srv.URL).Posts(context.Background(), 250)

	require.NoError(t, err)
	assert.Len(t, posts, 250)
	assert.Equal(t, 3, requests)
	assert.Equal(t, []int{100, 100, 50}, perPages)
}

func TestClient_Posts_FinalPageRequestsRemainder(t *testing.T) {
	var perPages []int
	var requests int
	srv := newPostsServer(t, 1000, &perPages, &requests)
	defer srv.Close()

	posts, err := NewClient(srv.URL).Posts(context.Background(), 120)

	require.NoError(t, err)
	assert.Len(t, posts, 120)
	assert.Equal(t, []int{100, 20}, perPages)
}

func TestClient_Posts_StopsAtReportedTotal(t *testing.T) {
	var perPages []int
	var requests int
	srv := newPostsServer(t, 150, &perPages, &requests)
	defer srv.Close()

	posts, err := NewClient(srv.URL).Posts(context.Background(), 10000)

	require.NoError(t, err)
	assert.Len(t, posts, 150)
	assert.Equal(t, 2, requests)
	assert.Equal(t, 1, posts[0].ID)
	assert.Equal(t, 150, posts[149].ID)
}

func TestClient_Posts_SinglePageUnderCap(t *testing.T) {
	var perPages []int
	var requests int
	srv := newPostsServer(t, 5, &perPages, &requests)
	defer srv.Close()

	posts, err := NewClient(srv.URL).Posts(context.Background(), 50)

	require.NoError(t, err)
	assert.Len(t, posts, 5)
	assert.Equal(t, 1, requests)
	assert.Equal(t, []int{50}, perPages)
}

func TestClient_Posts_ZeroMaxFetchesNothing(t *testing.T) {
	var requests int
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		requests++
	}))
	defer srv.Close()

	posts, err := NewClient(srv.URL).Posts(context.Background(), 0)

	require.NoError(t, err)
	assert.Empty(t, posts)
	assert.Zero(t, requests)
}

func TestClient_Posts_MidPaginationFailureKeepsAccumulated(t *testing.T) {
	var requests int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		if requests > 1 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		var posts []domain.RawPost
		for i := 0; i < 100; i++ {
			posts = append(posts, domain.RawPost{ID: i + 1})
		}
		w.Header().Set(HeaderTotal, "500")
		require.NoError(t, json.NewEncoder(w).Encode(posts))
	}))
	defer srv.Close()

	posts, err := NewClient(srv.URL).Posts(context.Background(), 300)

	require.NoError(t, err)
	assert.Len(t, posts, 100)
}

func TestClient_Posts_TotalFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	posts, err := NewClient(srv.URL).Posts(context.Background(), 100)

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrEmptyCollection)
	assert.Empty(t, posts)
}

func TestClient_Posts_EmptyCollection(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set(HeaderTotal, "0")
		fmt.Fprint(w, "[]")
	}))
	defer srv.Close()

	posts, err := NewClient(srv.URL).Posts(context.Background(), 100)

	require.NoError(t, err)
	assert.Empty(t, posts)
}

func TestClient_Tags(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, pathTags, r.URL.Path)
		w.Header().Set(HeaderTotal, "2")
		fmt.Fprint(w, `[{"id":5,"name":"Go","slug":"go"},{"id":9,"name":"Rust","slug":"rust"}]`)
	}))
	defer srv.Close()

	tags, err := NewClient(srv.URL).Tags(context.Background(), 100)

	require.NoError(t, err)
	require.Len(t, tags, 2)
	assert.Equal(t, "Go", tags[0].Name)
}

func TestClient_Media_DecodesRenderedTitle(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, pathMedia, r.URL.Path)
		w.Header().Set(HeaderTotal, "1")
		fmt.Fprint(w, `[{"id":77,"source_url":"https://old.site/uploads/hero.jpg","alt_text":"Hero","title":{"rendered":"The Hero"}}]`)
	}))
	defer srv.Close()

	media, err := NewClient(srv.URL).Media(context.Background(), 100)

	require.NoError(t, err)
	require.Len(t, media, 1)
	assert.Equal(t, 77, media[0].ID)
	assert.Equal(t, "https://old.site/uploads/hero.jpg", media[0].SourceURL)
	assert.Equal(t, "The Hero", media[0].Title.Rendered)
}

func TestClient_Ping(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set(HeaderTotal, "1")
		fmt.Fprint(w, `[{"id":1}]`)
	}))
	defer srv.Close()

	assert.NoError(t, NewClient(srv.URL).Ping(context.Background()))
}

func TestClient_Ping_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	err := NewClient(srv.URL).Ping(context.Background())

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrSourceUnavailable)
}

func TestNewClient_TrimsTrailingSlash(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, pathPosts, r.URL.Path)
		w.Header().Set(HeaderTotal, "1")
		fmt.Fprint(w, `[{"id":1}]`)
	}))
	defer srv.Close()

	posts, err := NewClient(srv.URL + "/").Posts(context.Background(), 10)

	require.NoError(t, err)
	assert.Len(t, posts, 1)
}

func TestAPIError(t *testing.T) {
	err := &APIError{StatusCode: 404, URL: "https://old.site/wp-json/wp/v2/posts", Body: "not found"}

	assert.Contains(t, err.Error(), "404")
	assert.True(t, IsNotFound(err))
	assert.False(t, IsNotFound(fmt.Errorf("plain")))
}
