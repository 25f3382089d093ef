package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/require"

	"github.com/crackwatch/monitor-service/internal/dtos"
	"github.com/crackwatch/monitor-service/internal/routes"
	"github.com/crackwatch/monitor-service/internal/services"
	"github.com/crackwatch/monitor-service/internal/utils"
)

type stubSearcher struct {
	docs []dtos.GeocodeDocument
	err  error
	got  string
}

func (s *stubSearcher) SearchKeyword(_ context.Context, query string) ([]dtos.GeocodeDocument, error) {
	s.got = query
	return s.docs, s.err
}

func geocodeRouter(searcher services.KeywordSearcher) *mux.Router {
	controller := NewGeocodeController(services.NewGeocodeService(searcher))
	router := mux.NewRouter()
	router.HandleFunc(routes.GeocodeSearch, controller.SearchHandler).Methods(http.MethodGet)
	return router
}

func TestGeocodeSearch(t *testing.T) {
	searcher := &stubSearcher{docs: []dtos.GeocodeDocument{
		{ID: "1", PlaceName: "City Hall", AddressName: "1 Plaza", X: "126.9780", Y: "37.5665"},
	}}
	router := geocodeRouter(searcher)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/geocode/search?query=city+hall", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "city hall", searcher.got)

	var body dtos.GeocodeSearchResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Documents, 1)
	require.Equal(t, "126.9780", body.Documents[0].X)
}

func TestGeocodeSearchMissingQuery(t *testing.T) {
	router := geocodeRouter(&stubSearcher{})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/geocode/search", nil))
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGeocodeSearchDisabled(t *testing.T) {
	router := geocodeRouter(nil)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/geocode/search?query=x", nil))
	require.Equal(t, http.StatusServiceUnavailable, rec.Code)

	var body utils.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, utils.ErrCodeGeocoderDisabled, body.Code)
}

func TestGeocodeSearchUpstreamFailure(t *testing.T) {
	router := geocodeRouter(&stubSearcher{err: utils.ErrExternalService})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/geocode/search?query=x", nil))
	require.Equal(t, http.StatusBadGateway, rec.Code)
}
