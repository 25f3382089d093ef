package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/crackwatch/monitor-service/internal/models"
	"github.com/crackwatch/monitor-service/internal/utils"
)

/* ------------------------------------------------------------------
   Public interface
------------------------------------------------------------------ */

type BuildingRepository interface {
	List(ctx context.Context) ([]models.Building, error)
	GetByID(ctx context.Context, id string) (*models.Building, error)
	FindByAddress(ctx context.Context, address string) (*models.Building, error)

	// Create assigns a timestamp ID when the building has none and
	// rejects a duplicate address, returning the existing record
	// alongside ErrDuplicateAddress.
	Create(ctx context.Context, b *models.Building) (*models.Building, error)
	Delete(ctx context.Context, id string) error

	// AppendMeasurement adds a reading to the building's matching
	// waypoint, starting a new waypoint when the id is unknown. Only an
	// unknown building fails the write.
	AppendMeasurement(ctx context.Context, buildingID, waypointID string, m models.Measurement) (*models.Measurement, error)

	// Backup writes a timestamped copy of the data file into dstDir.
	Backup(ctx context.Context, dstDir string) (string, error)
}

/* ------------------------------------------------------------------
   Flat-file implementation

   The whole store is one JSON document with a top-level `buildings`
   array. Every read parses the file; every mutation rewrites it
   wholesale. There is deliberately no partial update: the file is the
   unit of persistence.
------------------------------------------------------------------ */

type document struct {
	Buildings []models.Building `json:"buildings"`
}

type buildingFileRepo struct {
	mu   sync.Mutex
	path string
}

func NewBuildingFileRepository(path string) BuildingRepository {
	return &buildingFileRepo{path: path}
}

/* ---------- Reads ---------- */

func (r *buildingFileRepo) List(_ context.Context) ([]models.Building, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	doc, err := r.load()
	if err != nil {
		return nil, err
	}
	normalizeDocument(doc)
	return doc.Buildings, nil
}

func (r *buildingFileRepo) GetByID(_ context.Context, id string) (*models.Building, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	doc, err := r.load()
	if err != nil {
		return nil, err
	}
	normalizeDocument(doc)
	for i := range doc.Buildings {
		if doc.Buildings[i].ID == id {
			return &doc.Buildings[i], nil
		}
	}
	return nil, utils.ErrBuildingNotFound
}

func (r *buildingFileRepo) FindByAddress(_ context.Context, address string) (*models.Building, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	doc, err := r.load()
	if err != nil {
		return nil, err
	}
	for i := range doc.Buildings {
		if doc.Buildings[i].Address == address {
			return &doc.Buildings[i], nil
		}
	}
	return nil, utils.ErrBuildingNotFound
}

/* ---------- Mutations ---------- */

func (r *buildingFileRepo) Create(_ context.Context, b *models.Building) (*models.Building, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	doc, err := r.load()
	if err != nil {
		return nil, err
	}

	for i := range doc.Buildings {
		if doc.Buildings[i].Address == b.Address {
			return &doc.Buildings[i], utils.ErrDuplicateAddress
		}
	}

	if b.ID == "" {
		b.ID = strconv.FormatInt(time.Now().UnixMilli(), 10)
	}
	if b.Measurements == nil {
		b.Measurements = []models.Waypoint{}
	}

	doc.Buildings = append(doc.Buildings, *b)
	if err := r.save(doc); err != nil {
		return nil, err
	}
	return b, nil
}

func (r *buildingFileRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	doc, err := r.load()
	if err != nil {
		return err
	}

	idx := -1
	for i := range doc.Buildings {
		if doc.Buildings[i].ID == id {
			idx = i
			break
		}
	}
	if idx == -1 {
		return utils.ErrBuildingNotFound
	}

	doc.Buildings = append(doc.Buildings[:idx], doc.Buildings[idx+1:]...)
	return r.save(doc)
}

func (r *buildingFileRepo) AppendMeasurement(
	_ context.Context,
	buildingID, waypointID string,
	m models.Measurement,
) (*models.Measurement, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	doc, err := r.load()
	if err != nil {
		return nil, err
	}

	var building *models.Building
	for i := range doc.Buildings {
		if doc.Buildings[i].ID == buildingID {
			building = &doc.Buildings[i]
			break
		}
	}
	if building == nil {
		return nil, utils.ErrBuildingNotFound
	}

	if m.ID == "" {
		m.ID = strconv.FormatInt(time.Now().UnixMilli(), 10)
	}

	var waypoint *models.Waypoint
	for i := range building.Measurements {
		if building.Measurements[i].ID == waypointID {
			waypoint = &building.Measurements[i]
			break
		}
	}
	if waypoint == nil {
		// No matching waypoint: the reading starts a new one on the
		// building rather than failing the write.
		building.Measurements = append(building.Measurements, models.Waypoint{
			ID:           waypointID,
			Measurements: []models.Measurement{m},
		})
	} else {
		waypoint.Measurements = append(waypoint.Measurements, m)
	}

	if err := r.save(doc); err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *buildingFileRepo) Backup(_ context.Context, dstDir string) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	raw, err := os.ReadFile(r.path)
	if err != nil {
		return "", fmt.Errorf("read data file: %w", err)
	}
	if err := os.MkdirAll(dstDir, 0o755); err != nil {
		return "", fmt.Errorf("create backup dir: %w", err)
	}

	name := fmt.Sprintf("%s.%s", filepath.Base(r.path), time.Now().UTC().Format("20060102T150405Z"))
	dst := filepath.Join(dstDir, name)
	if err := os.WriteFile(dst, raw, 0o644); err != nil {
		return "", fmt.Errorf("write backup: %w", err)
	}
	return dst, nil
}

/* ---------- internals ---------- */

// load parses the whole document. A missing file is an empty store; a
// corrupt file is a hard error surfaced as a generic 500 upstream.
func (r *buildingFileRepo) load() (*document, error) {
	raw, err := os.ReadFile(r.path)
	if errors.Is(err, os.ErrNotExist) {
		return &document{Buildings: []models.Building{}}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrStoreUnavailable, err)
	}

	var doc document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrStoreUnavailable, err)
	}
	if doc.Buildings == nil {
		doc.Buildings = []models.Building{}
	}
	return &doc, nil
}

func (r *buildingFileRepo) save(doc *document) error {
	raw, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: %v", utils.ErrStoreUnavailable, err)
	}
	if err := os.WriteFile(r.path, raw, 0o644); err != nil {
		return fmt.Errorf("%w: %v", utils.ErrStoreUnavailable, err)
	}
	return nil
}

// normalizeDocument fixes measurement image URLs at the store
// boundary so no view has to probe alternative property shapes:
// relative paths gain a leading slash, absolute URLs pass through.
func normalizeDocument(doc *document) {
	for bi := range doc.Buildings {
		wps := doc.Buildings[bi].Measurements
		for wi := range wps {
			ms := wps[wi].Measurements
			for mi := range ms {
				ms[mi].ImageURL = NormalizeImageURL(ms[mi].ImageURL)
			}
		}
	}
}

// NormalizeImageURL leaves http(s) URLs untouched and prefixes
// anything else with a slash when it lacks one.
func NormalizeImageURL(url string) string {
	if url == "" {
		return ""
	}
	if strings.HasPrefix(url, "http://") || strings.HasPrefix(url, "https://") {
		return url
	}
	if !strings.HasPrefix(url, "/") {
		return "/" + url
	}
	return url
}
