package handlers

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestReviews_ListPublic(t *testing.T) {
	env := newTestEnv(t)

	rw := env.do(t, http.MethodGet, "/review", "", nil)
	require.Equal(t, http.StatusOK, rw.Code)

	var reviews []map[string]interface{}
	require.NoError(t, json.Unmarshal(rw.Body.Bytes(), &reviews))
	require.Empty(t, reviews)
}

func TestReviews_SubmitRequiresIdentity(t *testing.T) {
	env := newTestEnv(t)

	rw := env.do(t, http.MethodPost, "/review", "", map[string]interface{}{"rating": 5, "details": "great food"})
	require.Equal(t, http.StatusUnauthorized, rw.Code)

	tok := env.token(t, "a@x.com")
	rw2 := env.do(t, http.MethodPost, "/review", tok, map[string]interface{}{"rating": 5, "details": "great food"})
	require.Equal(t, http.StatusOK, rw2.Code)

	listRW := env.do(t, http.MethodGet, "/review", "", nil)
	var reviews []map[string]interface{}
	require.NoError(t, json.Unmarshal(listRW.Body.Bytes(), &reviews))
	require.Len(t, reviews, 1)
	require.Equal(t, "great food", reviews[0]["details"])
}
