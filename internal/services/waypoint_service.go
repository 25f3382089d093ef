package services

import (
	"context"
	"time"

	"github.com/crackwatch/monitor-service/internal/dtos"
	"github.com/crackwatch/monitor-service/internal/repositories"
	"github.com/crackwatch/monitor-service/internal/utils"
)

type WaypointService struct {
	repo repositories.BuildingRepository
}

func NewWaypointService(repo repositories.BuildingRepository) *WaypointService {
	return &WaypointService{repo: repo}
}

// ByBuilding returns one row per waypoint of the building, carrying
// only the most recent reading (array order, not date order — the
// store appends chronologically and the last entry wins).
func (s *WaypointService) ByBuilding(ctx context.Context, buildingID string) (*dtos.BuildingWaypointsResponse, error) {
	b, err := s.repo.GetByID(ctx, buildingID)
	if err != nil {
		return nil, err
	}

	rows := make([]dtos.WaypointReading, 0, len(b.Measurements))
	for _, wp := range b.Measurements {
		row := dtos.WaypointReading{
			ID:       wp.ID,
			Label:    wp.Label,
			Location: wp.Location,
		}
		if latest := wp.Latest(); latest != nil {
			row.Date = latest.Date
			row.WidthMM = latest.WidthMM
			if latest.ImageURL != "" {
				row.ImageURL = utils.Ptr(latest.ImageURL)
			}
		}
		rows = append(rows, row)
	}

	return &dtos.BuildingWaypointsResponse{
		BuildingName: b.Name,
		Waypoints:    rows,
	}, nil
}

// ByDate flattens every waypoint reading matching the date across all
// buildings.
func (s *WaypointService) ByDate(ctx context.Context, date string) ([]dtos.DatedWaypointReading, error) {
	buildings, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	rows := make([]dtos.DatedWaypointReading, 0)
	for _, b := range buildings {
		for _, wp := range b.Measurements {
			for _, m := range wp.Measurements {
				if m.Date != date {
					continue
				}
				row := dtos.DatedWaypointReading{
					ID:           wp.ID,
					Label:        wp.Label,
					BuildingID:   b.ID,
					BuildingName: b.Name,
					Location:     wp.Location,
					Date:         m.Date,
					WidthMM:      m.WidthMM,
				}
				if m.ImageURL != "" {
					row.ImageURL = utils.Ptr(m.ImageURL)
				}
				rows = append(rows, row)
				break // first reading on the date, matching the original lookup
			}
		}
	}
	return rows, nil
}

// All lists every waypoint of every building without readings.
func (s *WaypointService) All(ctx context.Context) ([]dtos.WaypointSummary, error) {
	buildings, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	rows := make([]dtos.WaypointSummary, 0)
	for _, b := range buildings {
		for _, wp := range b.Measurements {
			rows = append(rows, dtos.WaypointSummary{
				ID:           wp.ID,
				Label:        wp.Label,
				BuildingID:   b.ID,
				BuildingName: b.Name,
				Location:     wp.Location,
			})
		}
	}
	return rows, nil
}

// Images collects every photographed reading of one waypoint, searched
// across all buildings.
func (s *WaypointService) Images(ctx context.Context, waypointID string) (*dtos.WaypointImagesResponse, error) {
	buildings, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	for _, b := range buildings {
		for _, wp := range b.Measurements {
			if wp.ID != waypointID {
				continue
			}

			images := make([]dtos.WaypointImage, 0)
			for _, m := range wp.Measurements {
				if m.ImageURL == "" {
					continue
				}
				images = append(images, dtos.WaypointImage{
					ImageURL:  m.ImageURL,
					Date:      m.Date,
					WidthMM:   m.WidthMM,
					Timestamp: dateToMillis(m.Date),
				})
			}

			return &dtos.WaypointImagesResponse{
				WaypointID:    wp.ID,
				WaypointLabel: wp.Label,
				BuildingName:  b.Name,
				Images:        images,
			}, nil
		}
	}
	return nil, utils.ErrWaypointNotFound
}

func dateToMillis(date string) int64 {
	t, err := time.Parse("2006-01-02", date)
	if err != nil {
		return 0
	}
	return t.UnixMilli()
}
