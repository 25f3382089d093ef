package utils

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestKakaoSearchKeyword(t *testing.T) {
	var gotAuth, gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotQuery = r.URL.Query().Get("query")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"documents":[
			{"id":"8890","place_name":"서울시청","address_name":"서울 중구 세종대로 110","x":"126.97794","y":"37.56629"}
		]}`))
	}))
	defer srv.Close()

	client := NewKakaoClientWithBaseURL("test-key", srv.URL)
	docs, err := client.SearchKeyword(context.Background(), "서울 시청")
	require.NoError(t, err)

	require.Equal(t, "KakaoAK test-key", gotAuth)
	require.Equal(t, "서울 시청", gotQuery, "query survives URL encoding round trip")

	require.Len(t, docs, 1)
	require.Equal(t, "서울시청", docs[0].PlaceName)
	require.Equal(t, "126.97794", docs[0].X, "x stays a decimal string")
	require.Equal(t, "37.56629", docs[0].Y)
}

func TestKakaoSearchKeywordUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	client := NewKakaoClientWithBaseURL("bad-key", srv.URL)
	_, err := client.SearchKeyword(context.Background(), "anything")
	require.ErrorIs(t, err, ErrExternalService)
}

func TestKakaoSearchKeywordUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	srv.Close() // nothing is listening

	client := NewKakaoClientWithBaseURL("key", srv.URL)
	_, err := client.SearchKeyword(context.Background(), "anything")
	require.ErrorIs(t, err, ErrExternalService)
}
