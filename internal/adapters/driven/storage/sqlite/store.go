package sqlite

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	sqlitedriver "modernc.org/sqlite"

	"github.com/custodia-labs/estatemap/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/custodia-labs/estatemap/internal/core/domain"
	"github.com/custodia-labs/estatemap/internal/core/ports/driven"
	"github.com/custodia-labs/estatemap/internal/logger"
)

// DefaultSearchLimit caps the number of summaries returned by a search.
const DefaultSearchLimit = 200

// Ensure Store implements the interface.
var _ driven.ProjectCatalog = (*Store)(nil)

// foldFunc is the SQL name of a Unicode-aware lower(). SQLite's own lower()
// and LIKE only fold ASCII, while query terms are folded with the Go rules.
const foldFunc = "estatemap_fold"

func init() {
	sqlitedriver.MustRegisterDeterministicScalarFunction(foldFunc, 1, fold)
}

func fold(_ *sqlitedriver.FunctionContext, args []driver.Value) (driver.Value, error) {
	switch v := args[0].(type) {
	case nil:
		return nil, nil
	case string:
		return strings.ToLower(v), nil
	case []byte:
		return strings.ToLower(string(v)), nil
	default:
		return v, nil
	}
}

// Store is the SQLite project catalogue.
type Store struct {
	db    *sql.DB
	path  string
	limit int
}

// NewStore creates a new SQLite store at the specified data directory.
// If dataDir is empty, defaults to ~/.estatemap/data/projects.db.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".estatemap", "data")
	}

	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "projects.db")

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{
		db:    db,
		path:  dbPath,
		limit: DefaultSearchLimit,
	}

	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// migrate applies every *.up.sql newer than the recorded schema version.
func (s *Store) migrate(fsys embed.FS) error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	var upFiles []string
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasSuffix(name, ".up.sql") {
			upFiles = append(upFiles, name)
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		// "001_projects.up.sql" -> 1
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue
		}
		if version <= currentVersion {
			continue
		}

		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}
		if _, err := s.db.Exec(string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}
		logger.Debug("sqlite: applied migration %s", name)
	}

	return nil
}

// searchColumns are matched against every query term with LIKE.
var searchColumns = []string{
	"project_name",
	"promoter_name",
	"district",
	"taluk",
	"approving_authority",
	"source_of_water",
}

// buildSearchQuery returns the SQL and arguments for a keyword search.
// Each term must match at least one searchable column.
func buildSearchQuery(terms []string, limit int) (string, []any) {
	var b strings.Builder
	b.WriteString(`SELECT project_id, project_name, latitude, longitude
		FROM karnataka_projects
		WHERE land_under_litigation = 'NO'
		  AND rera_project_approval_status = 'APPROVED'
		  AND project_name IS NOT NULL AND project_name != ''
		  AND latitude IS NOT NULL
		  AND longitude IS NOT NULL`)

	args := make([]any, 0, len(terms)+1)
	for _, term := range terms {
		like := make([]string, len(searchColumns))
		for i, col := range searchColumns {
			like[i] = foldFunc + "(" + col + `) LIKE ? ESCAPE '\'`
		}
		b.WriteString("\n\t\t  AND (" + strings.Join(like, " OR ") + ")")
		pattern := "%" + escapeLike(term) + "%"
		for range searchColumns {
			args = append(args, pattern)
		}
	}

	b.WriteString("\n\t\tORDER BY project_id\n\t\tLIMIT ?")
	args = append(args, limit)
	return b.String(), args
}

func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}

// SearchProjects returns eligible projects matching every query term, ordered by id.
func (s *Store) SearchProjects(ctx context.Context, query string) ([]domain.ProjectSummary, error) {
	terms := domain.SearchTerms(query)
	q, args := buildSearchQuery(terms, s.limit)

	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("searching projects: %w", err)
	}
	defer rows.Close()

	results := make([]domain.ProjectSummary, 0)
	for rows.Next() {
		var p domain.ProjectSummary
		if err := rows.Scan(&p.ID, &p.Name, &p.Latitude, &p.Longitude); err != nil {
			return nil, fmt.Errorf("scanning project: %w", err)
		}
		results = append(results, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating projects: %w", err)
	}

	logger.Debug("sqlite: %d projects for terms %v", len(results), terms)
	return results, nil
}

// FetchProjectDetails returns the details of a project by id.
func (s *Store) FetchProjectDetails(ctx context.Context, id int64) (*domain.ProjectDetails, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT project_name, promoter_name, project_status, rera_registration_number,
		       source_of_water, approving_authority, project_start_date, proposed_completion_date
		FROM karnataka_projects
		WHERE project_id = ?
	`, id)

	var (
		d                                  domain.ProjectDetails
		name, promoter, status, reraNumber sql.NullString
		water, authority, start, complete  sql.NullString
	)
	err := row.Scan(&name, &promoter, &status, &reraNumber, &water, &authority, &start, &complete)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("getting project %d: %w", id, err)
	}

	d.ProjectName = name.String
	d.PromoterName = promoter.String
	d.ProjectStatus = status.String
	d.RERARegistrationNumber = reraNumber.String
	d.SourceOfWater = water.String
	d.ApprovingAuthority = authority.String
	d.ProjectStartDate = start.String
	d.ProposedCompletionDate = complete.String
	return &d, nil
}

// Upsert inserts or replaces projects by id in a single transaction.
func (s *Store) Upsert(ctx context.Context, projects []domain.Project) error {
	if len(projects) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO karnataka_projects (
			project_id, project_name, promoter_name, project_status, rera_registration_number,
			land_under_litigation, district, taluk, latitude, longitude,
			source_of_water, approving_authority, project_start_date, proposed_completion_date,
			rera_project_approval_status
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(project_id) DO UPDATE SET
			project_name = excluded.project_name,
			promoter_name = excluded.promoter_name,
			project_status = excluded.project_status,
			rera_registration_number = excluded.rera_registration_number,
			land_under_litigation = excluded.land_under_litigation,
			district = excluded.district,
			taluk = excluded.taluk,
			latitude = excluded.latitude,
			longitude = excluded.longitude,
			source_of_water = excluded.source_of_water,
			approving_authority = excluded.approving_authority,
			project_start_date = excluded.project_start_date,
			proposed_completion_date = excluded.proposed_completion_date,
			rera_project_approval_status = excluded.rera_project_approval_status
	`)
	if err != nil {
		return fmt.Errorf("preparing upsert: %w", err)
	}
	defer stmt.Close()

	for _, p := range projects {
		var lat, lon sql.NullFloat64
		if p.HasLocation {
			lat = sql.NullFloat64{Float64: p.Latitude, Valid: true}
			lon = sql.NullFloat64{Float64: p.Longitude, Valid: true}
		}

		_, err := stmt.ExecContext(ctx,
			p.ID, nullString(p.Name), nullString(p.PromoterName), nullString(p.ProjectStatus),
			nullString(p.RERARegistrationNumber), nullString(p.LandUnderLitigation),
			nullString(p.District), nullString(p.Taluk), lat, lon,
			nullString(p.SourceOfWater), nullString(p.ApprovingAuthority),
			nullString(p.ProjectStartDate), nullString(p.ProposedCompletionDate),
			nullString(p.ApprovalStatus),
		)
		if err != nil {
			return fmt.Errorf("upserting project %d: %w", p.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing upsert: %w", err)
	}
	return nil
}

// Count returns the number of stored projects, eligible or not.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM karnataka_projects").Scan(&n); err != nil {
		return 0, fmt.Errorf("counting projects: %w", err)
	}
	return n, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
