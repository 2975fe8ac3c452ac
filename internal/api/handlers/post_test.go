package handlers_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devjh/commboard/internal/domain"
	"github.com/devjh/commboard/internal/service"
	"github.com/devjh/commboard/internal/testutil"
)

type postResponse struct {
	ID       uint     `json:"id"`
	Title    string   `json:"title"`
	Content  string   `json:"content"`
	Tags     []string `json:"tags"`
	BoardID  uint     `json:"boardId"`
	AuthorID uint     `json:"authorId"`
}

func TestPostHandler_Flow(t *testing.T) {
	ts := testutil.NewTestServer(t)

	author, authorPassword := testutil.NewUserBuilder().
		WithEmail("author@x.com").
		Build(t, ts.DB.DB)
	_, otherPassword := testutil.NewUserBuilder().
		WithEmail("other@x.com").
		Build(t, ts.DB.DB)
	_, adminPassword := testutil.NewUserBuilder().
		WithEmail("admin@x.com").
		WithRole(domain.RoleAdmin).
		Build(t, ts.DB.DB)

	board := testutil.SeedBoard(t, ts.DB.DB, "general")

	authorToken := loginAs(t, ts, "author@x.com", authorPassword)
	otherToken := loginAs(t, ts, "other@x.com", otherPassword)
	adminToken := loginAs(t, ts, "admin@x.com", adminPassword)

	var postID uint

	t.Run("author creates a post", func(t *testing.T) {
		resp := doJSON(t, http.MethodPost, ts.APIURL("/posts"), authorToken, map[string]interface{}{
			"title":   "hello",
			"content": "first post",
			"tags":    []string{"intro", "daily"},
			"boardId": board.ID,
		})
		defer resp.Body.Close()

		require.Equal(t, http.StatusCreated, resp.StatusCode)

		var post postResponse
		testutil.AssertJSONResponse(t, resp, &post)
		assert.Equal(t, "hello", post.Title)
		assert.Equal(t, []string{"intro", "daily"}, post.Tags)
		assert.Equal(t, author.ID, post.AuthorID)
		postID = post.ID
	})

	t.Run("posting to a missing board fails", func(t *testing.T) {
		resp := doJSON(t, http.MethodPost, ts.APIURL("/posts"), authorToken, map[string]interface{}{
			"title":   "lost",
			"boardId": 9999,
		})
		defer resp.Body.Close()

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("board posts are publicly readable", func(t *testing.T) {
		resp, err := http.Get(ts.APIURL("/boards/" + itoa(board.ID) + "/posts"))
		require.NoError(t, err)
		defer resp.Body.Close()

		require.Equal(t, http.StatusOK, resp.StatusCode)

		var posts []postResponse
		testutil.AssertJSONResponse(t, resp, &posts)
		assert.Len(t, posts, 1)
	})

	t.Run("only the author can edit", func(t *testing.T) {
		resp := doJSON(t, http.MethodPut, ts.APIURL("/posts/"+itoa(postID)), otherToken, map[string]interface{}{
			"title": "hijacked",
		})
		defer resp.Body.Close()

		assert.Equal(t, http.StatusForbidden, resp.StatusCode)

		ok := doJSON(t, http.MethodPut, ts.APIURL("/posts/"+itoa(postID)), authorToken, map[string]interface{}{
			"title":   "hello, edited",
			"content": "updated",
		})
		defer ok.Body.Close()
		require.Equal(t, http.StatusOK, ok.StatusCode)
	})

	t.Run("admin can delete any post", func(t *testing.T) {
		resp := doJSON(t, http.MethodDelete, ts.APIURL("/posts/"+itoa(postID)), adminToken, nil)
		defer resp.Body.Close()

		require.Equal(t, http.StatusOK, resp.StatusCode)

		missing, err := http.Get(ts.APIURL("/posts/" + itoa(postID)))
		require.NoError(t, err)
		defer missing.Body.Close()
		assert.Equal(t, http.StatusNotFound, missing.StatusCode)
	})
}

func TestDashboardHandler_Stats(t *testing.T) {
	ts := testutil.NewTestServer(t)

	author, password := testutil.NewUserBuilder().
		WithEmail("stats@x.com").
		Build(t, ts.DB.DB)
	board := testutil.SeedBoard(t, ts.DB.DB, "general")
	testutil.SeedPost(t, ts.DB.DB, board.ID, author.ID, "one")
	testutil.SeedPost(t, ts.DB.DB, board.ID, author.ID, "two")

	token := loginAs(t, ts, "stats@x.com", password)

	t.Run("requires authentication", func(t *testing.T) {
		resp, err := http.Get(ts.APIURL("/dashboard"))
		require.NoError(t, err)
		defer resp.Body.Close()

		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("aggregates counts and recent posts", func(t *testing.T) {
		resp := doJSON(t, http.MethodGet, ts.APIURL("/dashboard"), token, nil)
		defer resp.Body.Close()

		require.Equal(t, http.StatusOK, resp.StatusCode)

		var stats service.DashboardStats
		testutil.AssertJSONResponse(t, resp, &stats)
		assert.Equal(t, int64(2), stats.TotalPosts)
		assert.Equal(t, int64(1), stats.TotalBoards)
		assert.Len(t, stats.RecentPosts, 2)
	})
}
