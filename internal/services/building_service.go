package services

import (
	"context"
	"errors"
	"sort"

	"github.com/bradfitz/latlong"
	"github.com/umahmood/haversine"

	"github.com/crackwatch/monitor-service/internal/dtos"
	"github.com/crackwatch/monitor-service/internal/models"
	"github.com/crackwatch/monitor-service/internal/repositories"
	"github.com/crackwatch/monitor-service/internal/utils"
)

type BuildingService struct {
	repo repositories.BuildingRepository
}

func NewBuildingService(repo repositories.BuildingRepository) *BuildingService {
	return &BuildingService{repo: repo}
}

func (s *BuildingService) List(ctx context.Context) ([]models.Building, error) {
	return s.repo.List(ctx)
}

// Create folds the flat lat/lng into a location, derives the local
// timezone from the coordinate and stores the building. On an address
// collision the existing record is returned with ErrDuplicateAddress.
func (s *BuildingService) Create(ctx context.Context, req dtos.CreateBuildingRequest) (*models.Building, error) {
	b := &models.Building{
		ID:      req.ID,
		Name:    req.Name,
		Address: req.Address,
		Location: models.Location{
			Latitude:  req.Lat,
			Longitude: req.Lng,
		},
		Measurements: req.Measurements,
	}

	if tz := latlong.LookupZoneName(req.Lat, req.Lng); tz != "" {
		b.TimeZone = tz
	}

	stored, err := s.repo.Create(ctx, b)
	if err != nil {
		// stored carries the already-registered building on a
		// duplicate address.
		return stored, err
	}

	utils.Logger.Infof("Registered building %s (%s)", stored.Name, stored.ID)
	return stored, nil
}

func (s *BuildingService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	utils.Logger.Infof("Deleted building %s", id)
	return nil
}

// Nearby lists buildings within radiusKm of the coordinate, closest
// first. Crow-flies distance is good enough for the map's "what is
// already registered around this search hit" view.
func (s *BuildingService) Nearby(ctx context.Context, lat, lng, radiusKm float64) ([]dtos.NearbyBuildingResponse, error) {
	buildings, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	origin := haversine.Coord{Lat: lat, Lon: lng}
	out := make([]dtos.NearbyBuildingResponse, 0)
	for _, b := range buildings {
		if !b.HasLocation() {
			continue
		}
		_, km := haversine.Distance(origin, haversine.Coord{
			Lat: b.Location.Latitude,
			Lon: b.Location.Longitude,
		})
		if km <= radiusKm {
			out = append(out, dtos.NearbyBuildingResponse{Building: b, DistanceKm: km})
		}
	}

	sort.Slice(out, func(i, j int) bool { return out[i].DistanceKm < out[j].DistanceKm })
	return out, nil
}

// IsNotFound reports whether err is the repository's missing-building
// sentinel.
func IsNotFound(err error) bool {
	return errors.Is(err, utils.ErrBuildingNotFound) || errors.Is(err, utils.ErrWaypointNotFound)
}
