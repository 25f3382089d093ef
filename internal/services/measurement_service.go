package services

import (
	"context"

	"github.com/crackwatch/monitor-service/internal/dtos"
	"github.com/crackwatch/monitor-service/internal/models"
	"github.com/crackwatch/monitor-service/internal/repositories"
)

type MeasurementService struct {
	repo repositories.BuildingRepository
}

func NewMeasurementService(repo repositories.BuildingRepository) *MeasurementService {
	return &MeasurementService{repo: repo}
}

// List flattens every waypoint of every building, tagged with the
// owning building's id and name.
func (s *MeasurementService) List(ctx context.Context) ([]dtos.TaggedWaypoint, error) {
	buildings, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	rows := make([]dtos.TaggedWaypoint, 0)
	for _, b := range buildings {
		for _, wp := range b.Measurements {
			rows = append(rows, dtos.TaggedWaypoint{
				Waypoint:     wp,
				BuildingID:   b.ID,
				BuildingName: b.Name,
			})
		}
	}
	return rows, nil
}

// Append adds one reading to the building's matching waypoint; an
// unknown waypoint id starts a new one. Only an unknown building
// surfaces the repository's not-found sentinel.
func (s *MeasurementService) Append(ctx context.Context, req dtos.AppendMeasurementRequest) (*models.Measurement, error) {
	m := models.Measurement{
		Date:     req.Date,
		WidthMM:  req.WidthMM,
		ImageURL: repositories.NormalizeImageURL(req.ImageURL),
	}
	return s.repo.AppendMeasurement(ctx, req.BuildingID, req.WaypointID, m)
}
