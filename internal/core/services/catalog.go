package services

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/custodia-labs/estatemap/internal/core/domain"
	"github.com/custodia-labs/estatemap/internal/core/ports/driven"
	"github.com/custodia-labs/estatemap/internal/core/ports/driving"
	"github.com/custodia-labs/estatemap/internal/logger"
)

// Ensure CatalogService implements the interface.
var _ driving.CatalogService = (*CatalogService)(nil)

// importBatchSize is the number of rows upserted per transaction.
const importBatchSize = 500

// Register export column names.
const (
	colProjectID              = "project_id"
	colProjectName            = "project_name"
	colPromoterName           = "promoter_name"
	colProjectStatus          = "project_status"
	colRERARegistrationNumber = "rera_registration_number"
	colLandUnderLitigation    = "land_under_litigation"
	colDistrict               = "district"
	colTaluk                  = "taluk"
	colLatitude               = "latitude"
	colLongitude              = "longitude"
	colSourceOfWater          = "source_of_water"
	colApprovingAuthority     = "approving_authority"
	colProjectStartDate       = "project_start_date"
	colProposedCompletionDate = "proposed_completion_date"
	colApprovalStatus         = "rera_project_approval_status"
)

// terminalStatuses collapse to their prefix, e.g.
// "REJECTED ON 01-02-2023" becomes "REJECTED".
var terminalStatuses = []string{"REJECTED", "WITHDRAWN", "REVOKED"}

// CatalogService imports the project register into the local catalogue.
type CatalogService struct {
	catalog driven.ProjectCatalog
}

// NewCatalogService creates a new catalogue service.
func NewCatalogService(catalog driven.ProjectCatalog) *CatalogService {
	return &CatalogService{catalog: catalog}
}

// ImportCSV reads a register export with a header row and upserts every
// row that carries a project id.
func (s *CatalogService) ImportCSV(ctx context.Context, r io.Reader) (*driving.ImportReport, error) {
	if s.catalog == nil {
		return nil, errors.New("catalogue not configured")
	}

	logger.Section("Catalogue Import")

	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("reading header: %w", err)
	}
	cols := indexColumns(header)
	if _, ok := cols[colProjectID]; !ok {
		return nil, fmt.Errorf("%w: missing %s column", domain.ErrInvalidInput, colProjectID)
	}

	report := &driving.ImportReport{}
	batch := make([]domain.Project, 0, importBatchSize)

	flush := func() error {
		if len(batch) == 0 {
			return nil
		}
		if err := s.catalog.Upsert(ctx, batch); err != nil {
			return fmt.Errorf("storing projects: %w", err)
		}
		report.Imported += len(batch)
		logger.Debug("Stored %d projects", report.Imported)
		batch = batch[:0]
		return nil
	}

	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading row %d: %w", report.Rows+2, err)
		}
		report.Rows++

		project, ok := parseProjectRow(cols, record)
		if !ok {
			report.Skipped++
			continue
		}
		batch = append(batch, project)

		if len(batch) >= importBatchSize {
			if err := flush(); err != nil {
				return nil, err
			}
		}
	}
	if err := flush(); err != nil {
		return nil, err
	}

	total, err := s.catalog.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("counting projects: %w", err)
	}
	report.Total = total

	logger.Info("Imported %d of %d rows (%d skipped)", report.Imported, report.Rows, report.Skipped)
	return report, nil
}

// indexColumns maps lower-cased header names to their position.
func indexColumns(header []string) map[string]int {
	cols := make(map[string]int, len(header))
	for i, h := range header {
		cols[strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))] = i
	}
	return cols
}

// parseProjectRow converts a CSV record. Rows without a numeric project id
// are rejected.
func parseProjectRow(cols map[string]int, record []string) (domain.Project, bool) {
	field := func(name string) string {
		i, ok := cols[name]
		if !ok || i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}

	id, err := strconv.ParseInt(field(colProjectID), 10, 64)
	if err != nil || id <= 0 {
		return domain.Project{}, false
	}

	p := domain.Project{
		ProjectSummary: domain.ProjectSummary{
			ID:   id,
			Name: field(colProjectName),
		},
		ProjectDetails: domain.ProjectDetails{
			ProjectName:            field(colProjectName),
			PromoterName:           field(colPromoterName),
			ProjectStatus:          field(colProjectStatus),
			RERARegistrationNumber: field(colRERARegistrationNumber),
			SourceOfWater:          field(colSourceOfWater),
			ApprovingAuthority:     field(colApprovingAuthority),
			ProjectStartDate:       ReformatDate(field(colProjectStartDate)),
			ProposedCompletionDate: ReformatDate(field(colProposedCompletionDate)),
		},
		District:            field(colDistrict),
		Taluk:               field(colTaluk),
		LandUnderLitigation: strings.ToUpper(field(colLandUnderLitigation)),
		ApprovalStatus:      CleanStatus(field(colApprovalStatus)),
	}

	lat, latErr := strconv.ParseFloat(field(colLatitude), 64)
	lon, lonErr := strconv.ParseFloat(field(colLongitude), 64)
	if latErr == nil && lonErr == nil && validCoordinate(lat, lon) {
		p.Latitude = lat
		p.Longitude = lon
		p.HasLocation = true
	}

	return p, true
}

func validCoordinate(lat, lon float64) bool {
	if lat == 0 && lon == 0 {
		return false
	}
	return lat >= -90 && lat <= 90 && lon >= -180 && lon <= 180
}

// ReformatDate converts a DD-MM-YYYY register date to YYYY-MM-DD.
// Values already in YYYY-MM-DD are kept; anything else becomes empty.
func ReformatDate(s string) string {
	if s == "" {
		return ""
	}
	if t, err := time.Parse("02-01-2006", s); err == nil {
		return t.Format(time.DateOnly)
	}
	if _, err := time.Parse(time.DateOnly, s); err == nil {
		return s
	}
	return ""
}

// CleanStatus normalises a register approval status. Empty becomes "UNKNOWN".
func CleanStatus(s string) string {
	s = strings.ToUpper(strings.TrimSpace(s))
	if s == "" {
		return "UNKNOWN"
	}
	for _, prefix := range terminalStatuses {
		if strings.HasPrefix(s, prefix) {
			return prefix
		}
	}
	return s
}
