package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devjh/commboard/internal/domain"
	"github.com/devjh/commboard/internal/testutil"
)

// loginAs returns an access token for the given credentials.
func loginAs(t *testing.T, ts *testutil.TestServer, email, password string) string {
	t.Helper()

	resp := postJSON(t, ts.APIURL("/auth/login"), map[string]string{
		"email":    email,
		"password": password,
	})
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var result authResponse
	testutil.AssertJSONResponse(t, resp, &result)
	return result.AccessToken
}

func doJSON(t *testing.T, method, url, token string, body interface{}) *http.Response {
	t.Helper()

	var buf *bytes.Buffer
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		buf = bytes.NewBuffer(raw)
	} else {
		buf = bytes.NewBuffer(nil)
	}

	req, err := http.NewRequest(method, url, buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	return resp
}

func TestBoardHandler_CRUD(t *testing.T) {
	ts := testutil.NewTestServer(t)

	_, adminPassword := testutil.NewUserBuilder().
		WithEmail("admin@x.com").
		WithRole(domain.RoleAdmin).
		Build(t, ts.DB.DB)
	_, userPassword := testutil.NewUserBuilder().
		WithEmail("user@x.com").
		Build(t, ts.DB.DB)

	adminToken := loginAs(t, ts, "admin@x.com", adminPassword)
	userToken := loginAs(t, ts, "user@x.com", userPassword)

	var boardID uint

	t.Run("admin creates a board", func(t *testing.T) {
		resp := doJSON(t, http.MethodPost, ts.APIURL("/boards"), adminToken, map[string]string{
			"name":        "general",
			"description": "General discussion",
		})
		defer resp.Body.Close()

		require.Equal(t, http.StatusCreated, resp.StatusCode)

		var board domain.Board
		testutil.AssertJSONResponse(t, resp, &board)
		assert.Equal(t, "general", board.Name)
		assert.NotZero(t, board.ID)
		boardID = board.ID
	})

	t.Run("non-admin cannot create a board", func(t *testing.T) {
		resp := doJSON(t, http.MethodPost, ts.APIURL("/boards"), userToken, map[string]string{
			"name": "rogue",
		})
		defer resp.Body.Close()

		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	})

	t.Run("unauthenticated create is rejected", func(t *testing.T) {
		resp := doJSON(t, http.MethodPost, ts.APIURL("/boards"), "", map[string]string{
			"name": "anon",
		})
		defer resp.Body.Close()

		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("boards are publicly listable", func(t *testing.T) {
		resp, err := http.Get(ts.APIURL("/boards"))
		require.NoError(t, err)
		defer resp.Body.Close()

		require.Equal(t, http.StatusOK, resp.StatusCode)

		var boards []domain.Board
		testutil.AssertJSONResponse(t, resp, &boards)
		assert.Len(t, boards, 1)
	})

	t.Run("admin updates and deletes", func(t *testing.T) {
		resp := doJSON(t, http.MethodPut, ts.APIURL("/boards/"+itoa(boardID)), adminToken, map[string]string{
			"name":        "general-renamed",
			"description": "still general",
		})
		defer resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)

		del := doJSON(t, http.MethodDelete, ts.APIURL("/boards/"+itoa(boardID)), adminToken, nil)
		defer del.Body.Close()
		require.Equal(t, http.StatusOK, del.StatusCode)

		missing, err := http.Get(ts.APIURL("/boards/" + itoa(boardID)))
		require.NoError(t, err)
		defer missing.Body.Close()
		assert.Equal(t, http.StatusNotFound, missing.StatusCode)
	})
}

func itoa(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}
