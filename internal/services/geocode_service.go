package services

import (
	"context"

	"github.com/crackwatch/monitor-service/internal/dtos"
	"github.com/crackwatch/monitor-service/internal/utils"
)

// KeywordSearcher is what GeocodeService needs from the Kakao client;
// tests provide a stub.
type KeywordSearcher interface {
	SearchKeyword(ctx context.Context, query string) ([]dtos.GeocodeDocument, error)
}

type GeocodeService struct {
	client KeywordSearcher
}

// NewGeocodeService accepts a nil client when no API key is
// configured; Search then fails with ErrGeocoderDisabled.
func NewGeocodeService(client KeywordSearcher) *GeocodeService {
	return &GeocodeService{client: client}
}

func (s *GeocodeService) Search(ctx context.Context, query string) ([]dtos.GeocodeDocument, error) {
	if s.client == nil {
		return nil, utils.ErrGeocoderDisabled
	}

	docs, err := s.client.SearchKeyword(ctx, query)
	if err != nil {
		utils.Logger.WithError(err).Warn("Geocoder keyword search failed")
		return nil, err
	}
	if docs == nil {
		docs = []dtos.GeocodeDocument{}
	}
	return docs, nil
}
