/*
PostgreSQL implementation of the memorial data access contracts.

Notable choices:
  - Window Functions: COUNT(*) OVER() returns the total listing count
    without a second round-trip.
  - Normalization: the nullable boolean status column is converted into the
    ApprovalState enum inside every read path, never outside this file.
  - Replace semantics: timelines are rewritten wholesale inside a single
    transaction (delete-all then bulk insert).
*/

package memorial

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/eternize/eternize/internal/platform/database/schema"
	"github.com/eternize/eternize/internal/platform/dberr"
	"github.com/eternize/eternize/pkg/uuid"
)

// # PostgreSQL Repositories

// memorialRepository implements the [MemorialRepository] interface using pgx.
type memorialRepository struct {
	pool *pgxpool.Pool
}

// NewMemorialRepository constructs a PostgreSQL backed memorial store.
func NewMemorialRepository(pool *pgxpool.Pool) MemorialRepository {
	return &memorialRepository{pool: pool}
}

// memorialColumns is the canonical select list for memorial reads.
func memorialColumns(alias string) string {
	t := schema.CoreMemorial
	cols := []string{
		t.ID, t.UserID, t.Name, t.Relationship, t.BirthDate, t.DeathDate,
		t.Biography, t.IsPublic, t.Status, t.CoverImageURL, t.ProfileImageURL,
		t.CreatedAt, t.UpdatedAt,
	}
	for i, col := range cols {
		cols[i] = alias + "." + col
	}
	return strings.Join(cols, ", ")
}

// scanMemorial reads one row into a normalized domain entity.
func scanMemorial(row pgx.Row, extra ...any) (*Memorial, error) {
	var (
		m            Memorial
		relationship *string
		birthDate    *string
		deathDate    *string
		biography    *string
		approved     *bool
		coverURL     *string
		profileURL   *string
	)

	dest := []any{
		&m.ID, &m.UserID, &m.Name, &relationship, &birthDate, &deathDate,
		&biography, &m.IsPublic, &approved, &coverURL, &profileURL,
		&m.CreatedAt, &m.UpdatedAt,
	}
	dest = append(dest, extra...)

	if err := row.Scan(dest...); err != nil {
		return nil, err
	}

	if relationship != nil {
		m.Relationship = *relationship
	}
	if birthDate != nil {
		m.BirthDate = *birthDate
	}
	if deathDate != nil {
		m.DeathDate = *deathDate
	}
	if biography != nil {
		m.Biography = *biography
	}
	if coverURL != nil {
		m.CoverImageURL = *coverURL
	}
	if profileURL != nil {
		m.ProfileImageURL = *profileURL
	}

	// NULL status reads as Pending
	m.Status = ApprovalFromBool(approved)

	return &m, nil
}

/*
List returns a filtered, paginated slice of memorials and the total count.

Parameters:
  - context: context.Context
  - filter: Filter (Owner, visibility, approval, name search)
  - limit: int
  - offset: int

Returns:
  - []*Memorial: Slice of matching records
  - int: Total count matching filters
  - error: Database execution errors
*/
func (repository *memorialRepository) List(context context.Context, filter Filter, limit, offset int) ([]*Memorial, int, error) {
	t := schema.CoreMemorial

	// Query build initialization
	var queryBuilder strings.Builder
	var args []any
	argID := 1

	// Using Window Function to get total count
	queryBuilder.WriteString(fmt.Sprintf(`
		SELECT %s, COUNT(*) OVER() AS total_count
		FROM %s m
		WHERE 1=1
	`, memorialColumns("m"), t.Table))

	// Apply Filters (Dynamic WHERE clause construction)
	if filter.OwnerID != "" {
		queryBuilder.WriteString(fmt.Sprintf(" AND m.%s = $%d", t.UserID, argID))
		args = append(args, filter.OwnerID)
		argID++
	}

	// Visibility Filtering
	if filter.Public != nil {
		queryBuilder.WriteString(fmt.Sprintf(" AND m.%s = $%d", t.IsPublic, argID))
		args = append(args, *filter.Public)
		argID++
	}

	// Approval Filtering (NULL counts as not approved)
	if filter.Approved != nil {
		queryBuilder.WriteString(fmt.Sprintf(" AND COALESCE(m.%s, FALSE) = $%d", t.Status, argID))
		args = append(args, *filter.Approved)
		argID++
	}

	// Name Search Filtering
	if filter.Query != "" {
		queryBuilder.WriteString(fmt.Sprintf(" AND m.%s ILIKE $%d", t.Name, argID))
		args = append(args, "%"+filter.Query+"%")
		argID++
	}

	// Newest pages first
	queryBuilder.WriteString(fmt.Sprintf(" ORDER BY m.%s DESC", t.CreatedAt))
	queryBuilder.WriteString(fmt.Sprintf(" LIMIT $%d OFFSET $%d", argID, argID+1))
	args = append(args, limit, offset)

	rows, err := repository.pool.Query(context, queryBuilder.String(), args...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list memorials")
	}
	defer rows.Close()

	memorials := make([]*Memorial, 0)
	total := 0
	for rows.Next() {
		m, err := scanMemorial(rows, &total)
		if err != nil {
			return nil, 0, dberr.Wrap(err, "scan memorial row")
		}
		memorials = append(memorials, m)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, dberr.Wrap(err, "iterate memorial rows")
	}

	return memorials, total, nil
}

/*
FindByID returns the memorial with the given ID, approval state normalized.
*/
func (repository *memorialRepository) FindByID(context context.Context, id string) (*Memorial, error) {
	t := schema.CoreMemorial

	query := fmt.Sprintf(`SELECT %s FROM %s m WHERE m.%s = $1`,
		memorialColumns("m"), t.Table, t.ID)

	m, err := scanMemorial(repository.pool.QueryRow(context, query, id))
	if err != nil {
		return nil, dberr.Wrap(err, "find memorial")
	}
	return m, nil
}

/*
Create persists a new memorial. The status column is written from the
entity's state; callers set it to Pending before calling.
*/
func (repository *memorialRepository) Create(context context.Context, memorial *Memorial) error {
	t := schema.CoreMemorial

	if memorial.ID == "" {
		memorial.ID = uuid.Must()
	}
	now := time.Now().UTC()
	memorial.CreatedAt = now
	memorial.UpdatedAt = now

	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, NULLIF($4, ''), NULLIF($5, ''), NULLIF($6, ''), NULLIF($7, ''), $8, $9, NULLIF($10, ''), NULLIF($11, ''), $12, $13)
	`, t.Table,
		t.ID, t.UserID, t.Name, t.Relationship, t.BirthDate, t.DeathDate,
		t.Biography, t.IsPublic, t.Status, t.CoverImageURL, t.ProfileImageURL,
		t.CreatedAt, t.UpdatedAt)

	_, err := repository.pool.Exec(context, query,
		memorial.ID, memorial.UserID, memorial.Name, memorial.Relationship,
		memorial.BirthDate, memorial.DeathDate, memorial.Biography,
		memorial.IsPublic, memorial.Status.Bool(), memorial.CoverImageURL,
		memorial.ProfileImageURL, memorial.CreatedAt, memorial.UpdatedAt)

	return dberr.Wrap(err, "create memorial")
}

/*
Update rewrites the mutable fields of a memorial, guarded by ownership.
The status column is deliberately absent from this statement: editing a
memorial never changes its approval state.
*/
func (repository *memorialRepository) Update(context context.Context, memorial *Memorial, ownerID string) error {
	t := schema.CoreMemorial

	memorial.UpdatedAt = time.Now().UTC()

	query := fmt.Sprintf(`
		UPDATE %s SET
			%s = $1,
			%s = NULLIF($2, ''),
			%s = NULLIF($3, ''),
			%s = NULLIF($4, ''),
			%s = NULLIF($5, ''),
			%s = $6,
			%s = NULLIF($7, ''),
			%s = NULLIF($8, ''),
			%s = $9
		WHERE %s = $10 AND %s = $11
	`, t.Table,
		t.Name, t.Relationship, t.BirthDate, t.DeathDate, t.Biography,
		t.IsPublic, t.CoverImageURL, t.ProfileImageURL, t.UpdatedAt,
		t.ID, t.UserID)

	tag, err := repository.pool.Exec(context, query,
		memorial.Name, memorial.Relationship, memorial.BirthDate,
		memorial.DeathDate, memorial.Biography, memorial.IsPublic,
		memorial.CoverImageURL, memorial.ProfileImageURL, memorial.UpdatedAt,
		memorial.ID, ownerID)
	if err != nil {
		return dberr.Wrap(err, "update memorial")
	}

	// Zero rows means missing or not owned; both map to not found
	if tag.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}

/*
SetApproval writes the approval state column of one memorial.
*/
func (repository *memorialRepository) SetApproval(context context.Context, id string, state ApprovalState) error {
	t := schema.CoreMemorial

	query := fmt.Sprintf(`UPDATE %s SET %s = $1, %s = $2 WHERE %s = $3`,
		t.Table, t.Status, t.UpdatedAt, t.ID)

	tag, err := repository.pool.Exec(context, query, state.Bool(), time.Now().UTC(), id)
	if err != nil {
		return dberr.Wrap(err, "set memorial approval")
	}
	if tag.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}

/*
Delete removes the memorial row. Child rows cascade via foreign keys.
*/
func (repository *memorialRepository) Delete(context context.Context, id string) error {
	t := schema.CoreMemorial

	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, t.Table, t.ID)

	tag, err := repository.pool.Exec(context, query, id)
	if err != nil {
		return dberr.Wrap(err, "delete memorial")
	}
	if tag.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}

// # Timeline Repository Implementation

// timelineRepository implements the [TimelineRepository] interface using pgx.
type timelineRepository struct {
	pool *pgxpool.Pool
}

// NewTimelineRepository constructs a PostgreSQL backed timeline store.
func NewTimelineRepository(pool *pgxpool.Pool) TimelineRepository {
	return &timelineRepository{pool: pool}
}

/*
ListByMemorial returns all timeline rows for a memorial in storage order.
*/
func (repository *timelineRepository) ListByMemorial(context context.Context, memorialID string) ([]TimelineEvent, error) {
	t := schema.CoreTimelineEvent

	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, COALESCE(%s, '')
		FROM %s WHERE %s = $1
	`, t.ID, t.MemorialID, t.Year, t.Title, t.Description, t.Table, t.MemorialID)

	rows, err := repository.pool.Query(context, query, memorialID)
	if err != nil {
		return nil, dberr.Wrap(err, "list timeline events")
	}
	defer rows.Close()

	events := make([]TimelineEvent, 0)
	for rows.Next() {
		var event TimelineEvent
		if err := rows.Scan(&event.ID, &event.MemorialID, &event.Year, &event.Title, &event.Description); err != nil {
			return nil, dberr.Wrap(err, "scan timeline row")
		}
		events = append(events, event)
	}
	if err := rows.Err(); err != nil {
		return nil, dberr.Wrap(err, "iterate timeline rows")
	}

	return events, nil
}

/*
Replace rewrites the full timeline of a memorial in one transaction.
*/
func (repository *timelineRepository) Replace(context context.Context, memorialID string, events []TimelineEvent) error {
	t := schema.CoreTimelineEvent

	transaction, err := repository.pool.Begin(context)
	if err != nil {
		return dberr.Wrap(err, "begin timeline replace")
	}
	defer func() { _ = transaction.Rollback(context) }()

	deleteQuery := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, t.Table, t.MemorialID)
	if _, err := transaction.Exec(context, deleteQuery, memorialID); err != nil {
		return dberr.Wrap(err, "clear timeline")
	}

	if len(events) > 0 {
		insertQuery := fmt.Sprintf(`
			INSERT INTO %s (%s, %s, %s, %s, %s, %s)
			VALUES ($1, $2, $3, $4, NULLIF($5, ''), $6)
		`, t.Table, t.ID, t.MemorialID, t.Year, t.Title, t.Description, t.CreatedAt)

		batch := &pgx.Batch{}
		now := time.Now().UTC()
		for _, event := range events {
			id := event.ID
			if id == "" {
				id = uuid.Must()
			}
			batch.Queue(insertQuery, id, memorialID, event.Year, event.Title, event.Description, now)
		}

		results := transaction.SendBatch(context, batch)
		for range events {
			if _, err := results.Exec(); err != nil {
				_ = results.Close()
				return dberr.Wrap(err, "insert timeline event")
			}
		}
		if err := results.Close(); err != nil {
			return dberr.Wrap(err, "close timeline batch")
		}
	}

	return dberr.Wrap(transaction.Commit(context), "commit timeline replace")
}

// # Media Repository Implementation

// mediaRepository implements the [MediaRepository] interface using pgx.
type mediaRepository struct {
	pool *pgxpool.Pool
}

// NewMediaRepository constructs a PostgreSQL backed media store.
func NewMediaRepository(pool *pgxpool.Pool) MediaRepository {
	return &mediaRepository{pool: pool}
}

/*
ListByMemorial returns all media rows for a memorial.
*/
func (repository *mediaRepository) ListByMemorial(context context.Context, memorialID string) ([]MediaItem, error) {
	t := schema.CoreMediaItem

	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, COALESCE(%s, ''), %s
		FROM %s WHERE %s = $1
		ORDER BY %s ASC
	`, t.ID, t.MemorialID, t.Kind, t.URL, t.FileName, t.CreatedAt,
		t.Table, t.MemorialID, t.CreatedAt)

	rows, err := repository.pool.Query(context, query, memorialID)
	if err != nil {
		return nil, dberr.Wrap(err, "list media items")
	}
	defer rows.Close()

	items := make([]MediaItem, 0)
	for rows.Next() {
		var item MediaItem
		if err := rows.Scan(&item.ID, &item.MemorialID, &item.Kind, &item.URL, &item.FileName, &item.CreatedAt); err != nil {
			return nil, dberr.Wrap(err, "scan media row")
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, dberr.Wrap(err, "iterate media rows")
	}

	return items, nil
}

/*
Insert bulk-persists freshly uploaded media rows.
*/
func (repository *mediaRepository) Insert(context context.Context, items []MediaItem) error {
	if len(items) == 0 {
		return nil
	}
	t := schema.CoreMediaItem

	insertQuery := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, NULLIF($5, ''), $6)
	`, t.Table, t.ID, t.MemorialID, t.Kind, t.URL, t.FileName, t.CreatedAt)

	batch := &pgx.Batch{}
	now := time.Now().UTC()
	for _, item := range items {
		id := item.ID
		if id == "" {
			id = uuid.Must()
		}
		createdAt := item.CreatedAt
		if createdAt.IsZero() {
			createdAt = now
		}
		batch.Queue(insertQuery, id, item.MemorialID, item.Kind, item.URL, item.FileName, createdAt)
	}

	results := repository.pool.SendBatch(context, batch)
	for range items {
		if _, err := results.Exec(); err != nil {
			_ = results.Close()
			return dberr.Wrap(err, "insert media item")
		}
	}
	return dberr.Wrap(results.Close(), "close media batch")
}

/*
DeleteByIDs removes media rows by id, scoped to one memorial. Ids that no
longer exist are skipped, keeping removal idempotent.
*/
func (repository *mediaRepository) DeleteByIDs(context context.Context, memorialID string, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	t := schema.CoreMediaItem

	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1 AND %s = ANY($2)`,
		t.Table, t.MemorialID, t.ID)

	_, err := repository.pool.Exec(context, query, memorialID, ids)
	return dberr.Wrap(err, "delete media items")
}
