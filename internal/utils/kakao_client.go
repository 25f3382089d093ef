package utils

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/crackwatch/monitor-service/internal/dtos"
)

const (
	kakaoKeywordSearchURL = "https://dapi.kakao.com/v2/local/search/keyword.json"

	// The upstream geocoder gives no SLA; a slow search must surface a
	// failure rather than hang the caller.
	kakaoRequestTimeout = 10 * time.Second
)

// KakaoClient performs keyword address searches against the Kakao
// Local REST API.
type KakaoClient struct {
	apiKey  string
	baseURL string
	http    *http.Client
}

func NewKakaoClient(apiKey string) *KakaoClient {
	return &KakaoClient{
		apiKey:  apiKey,
		baseURL: kakaoKeywordSearchURL,
		http:    &http.Client{Timeout: kakaoRequestTimeout},
	}
}

// NewKakaoClientWithBaseURL is for tests pointing at a stub server.
func NewKakaoClientWithBaseURL(apiKey, baseURL string) *KakaoClient {
	c := NewKakaoClient(apiKey)
	c.baseURL = baseURL
	return c
}

// SearchKeyword runs one keyword query and returns the raw documents
// (x = longitude, y = latitude, decimal strings).
func (c *KakaoClient) SearchKeyword(ctx context.Context, query string) ([]dtos.GeocodeDocument, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		c.baseURL+"?query="+url.QueryEscape(query), nil)
	if err != nil {
		return nil, fmt.Errorf("%w: build request: %v", ErrExternalService, err)
	}
	req.Header.Set("Authorization", "KakaoAK "+c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrExternalService, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: geocoder returned %d", ErrExternalService, resp.StatusCode)
	}

	var body dtos.GeocodeSearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("%w: decode response: %v", ErrExternalService, err)
	}
	return body.Documents, nil
}
