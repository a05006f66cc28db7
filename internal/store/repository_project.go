package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgerrcode"
	"github.com/openlabworks/labops/internal/logger"
	"github.com/openlabworks/labops/models"
)

// projectRepository is the PostgreSQL-backed implementation of
// [ProjectRepository]. The aggregate is spread over three tables: "projects"
// for the document itself (tags and attachments as jsonb), "project_members"
// for the roster and "project_notes" for the append-only notes.
//
// Dynamic statements (partial updates, scoped listing and aggregation) are
// built with squirrel; fixed statements live in sql_queries.go.
type projectRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewProjectRepository constructs a [ProjectRepository] backed by the
// provided database connection and logger.
func NewProjectRepository(db *DB, logger *logger.Logger) ProjectRepository {
	logger.Debug().Msg("creating project repository")
	return &projectRepository{
		db:     db,
		logger: logger,
	}
}

// psql builds placeholders in the $1 format expected by PostgreSQL.
var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// projectSelectColumns mirrors projectColumns with the "p" table alias used
// by the scoped queries.
var projectSelectColumns = []string{
	"p.project_id", "p.title", "p.description", "p.status", "p.priority", "p.department",
	"p.start_date", "p.end_date", "p.created_by", "p.tags", "p.budget", "p.progress",
	"p.attachments", "p.created_at", "p.updated_at",
}

// rowScanner abstracts *sql.Row and *sql.Rows for the shared scan helper.
type rowScanner interface {
	Scan(dest ...any) error
}

// scanProject reads a row in projectColumns order. Tags and attachments are
// decoded from their jsonb representation.
func scanProject(row rowScanner) (models.Project, error) {
	var p models.Project
	var tags, attachments []byte

	err := row.Scan(
		&p.ProjectID, &p.Title, &p.Description, &p.Status, &p.Priority, &p.Department,
		&p.StartDate, &p.EndDate, &p.CreatedBy, &tags, &p.Budget, &p.Progress,
		&attachments, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return models.Project{}, err
	}

	if len(tags) > 0 {
		if err := json.Unmarshal(tags, &p.Tags); err != nil {
			return models.Project{}, fmt.Errorf("%w: tags", ErrScanningRow)
		}
	}
	if p.Tags == nil {
		p.Tags = []string{}
	}

	if len(attachments) > 0 {
		if err := json.Unmarshal(attachments, &p.Attachments); err != nil {
			return models.Project{}, fmt.Errorf("%w: attachments", ErrScanningRow)
		}
	}

	if p.TeamMembers == nil {
		p.TeamMembers = []int64{}
	}

	return p, nil
}

// scopedProjects narrows a projects query to the given visibility scope:
// no filter for admins, created-or-member for everyone else.
func scopedProjects(b sq.SelectBuilder, scope Scope) sq.SelectBuilder {
	if scope.Admin {
		return b
	}

	return b.Where(sq.Or{
		sq.Eq{"p.created_by": scope.ActorID},
		sq.Expr("EXISTS (SELECT 1 FROM project_members m WHERE m.project_id = p.project_id AND m.user_id = ?)", scope.ActorID),
	})
}

// CreateProject persists a new project row. The id and createdBy are assumed
// to be set by the service layer; tags are stored as jsonb.
func (r *projectRepository) CreateProject(ctx context.Context, project models.Project) (models.Project, error) {
	log := logger.FromContext(ctx)

	tags, err := json.Marshal(project.Tags)
	if err != nil {
		return models.Project{}, fmt.Errorf("%w: tags", ErrBuildingSQLQuery)
	}

	row := r.db.QueryRowContext(ctx, createProject,
		project.ProjectID, project.Title, project.Description, project.Status, project.Priority,
		project.Department, project.StartDate, project.EndDate, project.CreatedBy, tags, project.Budget,
	)

	created, err := scanProject(row)
	if err != nil {
		log.Err(err).Str("func", "*projectRepository.CreateProject").
			Bool("retryable", r.db.IsRetryable(err)).
			Msg("error creating project")
		return models.Project{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return created, nil
}

// GetProject loads the full aggregate: the project row, its roster and its
// notes. Returns [ErrProjectNotFound] when the id does not resolve.
func (r *projectRepository) GetProject(ctx context.Context, projectID string) (models.Project, error) {
	log := logger.FromContext(ctx)

	project, err := scanProject(r.db.QueryRowContext(ctx, findProjectByID, projectID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Project{}, ErrProjectNotFound
		}

		log.Err(err).Str("func", "*projectRepository.GetProject").
			Bool("retryable", r.db.IsRetryable(err)).
			Msg("error finding project")
		return models.Project{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	if project.TeamMembers, err = r.teamMembers(ctx, projectID); err != nil {
		return models.Project{}, err
	}
	if project.Notes, err = r.notes(ctx, projectID); err != nil {
		return models.Project{}, err
	}

	return project, nil
}

// ListProjects returns the projects visible in scope, most recently updated
// first, with rosters populated (notes are omitted from listings).
func (r *projectRepository) ListProjects(ctx context.Context, scope Scope) ([]models.Project, error) {
	b := scopedProjects(psql.Select(projectSelectColumns...).From("projects p"), scope).
		OrderBy("p.updated_at DESC")

	return r.queryProjects(ctx, "ListProjects", b)
}

// UpdateProject applies a partial update: only non-nil fields of update are
// written. updated_at always advances, so the statement is never empty.
func (r *projectRepository) UpdateProject(ctx context.Context, projectID string, update models.ProjectUpdate) (models.Project, error) {
	log := logger.FromContext(ctx)

	b := psql.Update("projects").
		Set("updated_at", sq.Expr("NOW()")).
		Where(sq.Eq{"project_id": projectID}).
		Suffix("RETURNING " + projectColumns)

	if update.Title != nil {
		b = b.Set("title", *update.Title)
	}
	if update.Description != nil {
		b = b.Set("description", *update.Description)
	}
	if update.Status != nil {
		b = b.Set("status", *update.Status)
	}
	if update.Priority != nil {
		b = b.Set("priority", *update.Priority)
	}
	if update.Department != nil {
		b = b.Set("department", *update.Department)
	}
	if update.StartDate != nil {
		b = b.Set("start_date", *update.StartDate)
	}
	if update.EndDate != nil {
		b = b.Set("end_date", *update.EndDate)
	}
	if update.Tags != nil {
		tags, err := json.Marshal(*update.Tags)
		if err != nil {
			return models.Project{}, fmt.Errorf("%w: tags", ErrBuildingSQLQuery)
		}
		b = b.Set("tags", tags)
	}
	if update.Budget != nil {
		b = b.Set("budget", *update.Budget)
	}
	if update.Progress != nil {
		b = b.Set("progress", *update.Progress)
	}

	query, args, err := b.ToSql()
	if err != nil {
		return models.Project{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	project, err := scanProject(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Project{}, ErrProjectNotFound
		}

		log.Err(err).Str("func", "*projectRepository.UpdateProject").
			Bool("retryable", r.db.IsRetryable(err)).
			Msg("error updating project")
		return models.Project{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	if project.TeamMembers, err = r.teamMembers(ctx, projectID); err != nil {
		return models.Project{}, err
	}
	if project.Notes, err = r.notes(ctx, projectID); err != nil {
		return models.Project{}, err
	}

	return project, nil
}

// DeleteProject removes the project row; membership and notes rows follow via
// ON DELETE CASCADE.
func (r *projectRepository) DeleteProject(ctx context.Context, projectID string) error {
	log := logger.FromContext(ctx)

	res, err := r.db.ExecContext(ctx, deleteProject, projectID)
	if err != nil {
		log.Err(err).Str("func", "*projectRepository.DeleteProject").
			Bool("retryable", r.db.IsRetryable(err)).
			Msg("error deleting project")
		return fmt.Errorf("unexpected DB error: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("unexpected DB error: %w", err)
	}
	if affected == 0 {
		return ErrProjectNotFound
	}

	return nil
}

// AddTeamMember inserts a roster row. The composite primary key turns a
// duplicate insert into [ErrAlreadyTeamMember]; a dangling project or user
// reference surfaces as [ErrProjectNotFound] / [ErrUserNotFound].
func (r *projectRepository) AddTeamMember(ctx context.Context, projectID string, userID int64) error {
	log := logger.FromContext(ctx)

	if _, err := r.db.ExecContext(ctx, addTeamMember, projectID, userID); err != nil {
		switch postgresError(err) {
		case pgerrcode.UniqueViolation:
			return ErrAlreadyTeamMember
		case pgerrcode.ForeignKeyViolation:
			return ErrProjectNotFound
		}

		log.Err(err).Str("func", "*projectRepository.AddTeamMember").
			Bool("retryable", r.db.IsRetryable(err)).
			Msg("error adding team member")
		return fmt.Errorf("unexpected DB error: %w", err)
	}

	return nil
}

// RemoveTeamMember deletes a roster row. Removing an absent member is a
// no-op, not an error.
func (r *projectRepository) RemoveTeamMember(ctx context.Context, projectID string, userID int64) error {
	log := logger.FromContext(ctx)

	if _, err := r.db.ExecContext(ctx, removeTeamMember, projectID, userID); err != nil {
		log.Err(err).Str("func", "*projectRepository.RemoveTeamMember").
			Bool("retryable", r.db.IsRetryable(err)).
			Msg("error removing team member")
		return fmt.Errorf("unexpected DB error: %w", err)
	}

	return nil
}

// AddNote appends a note row and returns it with the server-assigned id and
// timestamp.
func (r *projectRepository) AddNote(ctx context.Context, projectID string, note models.Note) (models.Note, error) {
	log := logger.FromContext(ctx)

	row := r.db.QueryRowContext(ctx, addNote, projectID, note.Content, note.CreatedBy)

	var created models.Note
	if err := row.Scan(&created.NoteID, &created.Content, &created.CreatedBy, &created.CreatedAt); err != nil {
		if postgresError(err) == pgerrcode.ForeignKeyViolation {
			return models.Note{}, ErrProjectNotFound
		}

		log.Err(err).Str("func", "*projectRepository.AddNote").
			Bool("retryable", r.db.IsRetryable(err)).
			Msg("error adding note")
		return models.Note{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return created, nil
}

// GetStats aggregates the projects visible in scope: total count, counts
// grouped by status, priority and department, and the 5 most recently
// updated projects.
func (r *projectRepository) GetStats(ctx context.Context, scope Scope) (models.ProjectStats, error) {
	stats := models.ProjectStats{
		ByStatus:     map[string]int64{},
		ByPriority:   map[string]int64{},
		ByDepartment: map[string]int64{},
	}

	var err error
	if stats.ByStatus, err = r.countBy(ctx, "status", scope); err != nil {
		return models.ProjectStats{}, err
	}
	if stats.ByPriority, err = r.countBy(ctx, "priority", scope); err != nil {
		return models.ProjectStats{}, err
	}
	if stats.ByDepartment, err = r.countBy(ctx, "department", scope); err != nil {
		return models.ProjectStats{}, err
	}

	for _, n := range stats.ByStatus {
		stats.Total += n
	}

	recent := scopedProjects(psql.Select(projectSelectColumns...).From("projects p"), scope).
		OrderBy("p.updated_at DESC").
		Limit(5)
	if stats.Recent, err = r.queryProjects(ctx, "GetStats", recent); err != nil {
		return models.ProjectStats{}, err
	}

	return stats, nil
}

// countBy groups the scoped projects by the given column. column is one of
// the fixed names passed by GetStats, never caller input.
func (r *projectRepository) countBy(ctx context.Context, column string, scope Scope) (map[string]int64, error) {
	log := logger.FromContext(ctx)

	b := scopedProjects(psql.Select("p."+column, "COUNT(*)").From("projects p"), scope).
		GroupBy("p." + column)

	query, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*projectRepository.countBy").Str("column", column).
			Bool("retryable", r.db.IsRetryable(err)).
			Msg("error counting projects")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	counts := map[string]int64{}
	for rows.Next() {
		var key string
		var n int64
		if err := rows.Scan(&key, &n); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		counts[key] = n
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return counts, nil
}

// queryProjects executes a select built over "projects p", scans all rows and
// populates the rosters of the returned projects.
func (r *projectRepository) queryProjects(ctx context.Context, op string, b sq.SelectBuilder) ([]models.Project, error) {
	log := logger.FromContext(ctx)

	query, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*projectRepository."+op).
			Bool("retryable", r.db.IsRetryable(err)).
			Msg("error listing projects")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	projects := []models.Project{}
	for rows.Next() {
		project, err := scanProject(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		projects = append(projects, project)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	if err := r.loadTeamMembers(ctx, projects); err != nil {
		return nil, err
	}

	return projects, nil
}

// teamMembers returns the roster of a single project.
func (r *projectRepository) teamMembers(ctx context.Context, projectID string) ([]int64, error) {
	rows, err := r.db.QueryContext(ctx, findTeamMembers, projectID)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	members := []int64{}
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		members = append(members, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return members, nil
}

// notes returns the append-only note list of a single project.
func (r *projectRepository) notes(ctx context.Context, projectID string) ([]models.Note, error) {
	rows, err := r.db.QueryContext(ctx, findNotes, projectID)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	notes := []models.Note{}
	for rows.Next() {
		var n models.Note
		if err := rows.Scan(&n.NoteID, &n.Content, &n.CreatedBy, &n.CreatedAt); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		notes = append(notes, n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return notes, nil
}

// loadTeamMembers fills the rosters of all listed projects in one query.
func (r *projectRepository) loadTeamMembers(ctx context.Context, projects []models.Project) error {
	if len(projects) == 0 {
		return nil
	}

	ids := make([]string, 0, len(projects))
	index := make(map[string]int, len(projects))
	for i, p := range projects {
		ids = append(ids, p.ProjectID)
		index[p.ProjectID] = i
	}

	query, args, err := psql.Select("project_id", "user_id").
		From("project_members").
		Where(sq.Eq{"project_id": ids}).
		OrderBy("user_id").
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	for rows.Next() {
		var projectID string
		var userID int64
		if err := rows.Scan(&projectID, &userID); err != nil {
			return fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		if i, ok := index[projectID]; ok {
			projects[i].TeamMembers = append(projects[i].TeamMembers, userID)
		}
	}

	return rows.Err()
}
