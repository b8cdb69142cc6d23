package repositories

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/notehive/notehive-server/internal/app/models"
	"github.com/notehive/notehive-server/internal/pkg/apperrors"
	"github.com/notehive/notehive-server/internal/pkg/dberrors"
	"github.com/notehive/notehive-server/internal/pkg/logger"
)

// noteColumns lists the notes table columns in scan order.
var noteColumns = []string{
	"id", "slug", "title", "excerpt", "content",
	"year_id", "unit_id", "lecturer_id",
	"difficulty_level", "estimated_read_time",
	"view_count", "download_count",
	"is_published", "is_featured",
	"created_at", "updated_at",
}

// NoteRepository handles database operations for notes.
type NoteRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewNoteRepository creates a new NoteRepository.
func NewNoteRepository(db *pgxpool.Pool) *NoteRepository {
	return &NoteRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

func (r *NoteRepository) selectNotes() squirrel.SelectBuilder {
	return r.sb.Select(noteColumns...).From("notes")
}

// scanNote scans a row into a Note.
func scanNote(row pgx.Row) (*models.Note, error) {
	var note models.Note
	err := row.Scan(
		&note.ID, &note.Slug, &note.Title, &note.Excerpt, &note.Content,
		&note.YearID, &note.UnitID, &note.LecturerID,
		&note.Difficulty, &note.EstimatedReadTime,
		&note.ViewCount, &note.DownloadCount,
		&note.IsPublished, &note.IsFeatured,
		&note.CreatedAt, &note.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.ErrNoteNotFound
		}
		logger.Error().Err(err).Msg("Error scanning note row")
		return nil, err
	}
	return &note, nil
}

// CreateNote inserts a new note and returns its ID.
func (r *NoteRepository) CreateNote(ctx context.Context, note *models.Note) (int64, error) {
	sql, args, err := r.sb.Insert("notes").
		Columns(
			"slug", "title", "excerpt", "content",
			"year_id", "unit_id", "lecturer_id",
			"difficulty_level", "estimated_read_time",
			"is_published", "is_featured",
		).
		Values(
			note.Slug, note.Title, note.Excerpt, note.Content,
			note.YearID, note.UnitID, note.LecturerID,
			note.Difficulty, note.EstimatedReadTime,
			note.IsPublished, note.IsFeatured,
		).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building create note SQL")
		return 0, err
	}

	var id int64
	err = r.db.QueryRow(ctx, sql, args...).Scan(&id)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "notes_slug_key") {
			return 0, apperrors.ErrSlugTaken
		}
		if dberrors.IsForeignKeyViolation(err) {
			return 0, apperrors.NewBadRequestError("referenced year, unit or lecturer does not exist")
		}
		logger.Error().Err(err).Str("slug", note.Slug).Msg("Error executing create note query")
		return 0, err
	}

	return id, nil
}

// GetNoteByID retrieves a single note by its ID.
func (r *NoteRepository) GetNoteByID(ctx context.Context, id int64) (*models.Note, error) {
	sqlStr, args, err := r.selectNotes().Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get note by ID SQL")
		return nil, err
	}
	return scanNote(r.db.QueryRow(ctx, sqlStr, args...))
}

// GetNoteBySlug retrieves a single note by its slug.
func (r *NoteRepository) GetNoteBySlug(ctx context.Context, slug string) (*models.Note, error) {
	sqlStr, args, err := r.selectNotes().Where(squirrel.Eq{"slug": slug}).ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get note by slug SQL")
		return nil, err
	}
	return scanNote(r.db.QueryRow(ctx, sqlStr, args...))
}

// GetAllNotes retrieves every note in ascending ID order. The catalog loads
// through this; filtering and sorting happen in memory.
func (r *NoteRepository) GetAllNotes(ctx context.Context) ([]models.Note, error) {
	sqlStr, args, err := r.selectNotes().OrderBy("id ASC").ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get all notes SQL")
		return nil, err
	}

	rows, err := r.db.Query(ctx, sqlStr, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing get all notes query")
		return nil, err
	}
	defer rows.Close()

	notes := make([]models.Note, 0)
	for rows.Next() {
		note, err := scanNote(rows)
		if err != nil {
			return nil, err
		}
		notes = append(notes, *note)
	}
	if err = rows.Err(); err != nil {
		logger.Error().Err(err).Msg("Error iterating note rows")
		return nil, fmt.Errorf("database iteration error: %w", err)
	}

	return notes, nil
}

// UpdateNote overwrites every editable field of a note. The view and download
// counters are deliberately left out; they move through their own statements.
func (r *NoteRepository) UpdateNote(ctx context.Context, note *models.Note) error {
	sql, args, err := r.sb.Update("notes").
		Set("slug", note.Slug).
		Set("title", note.Title).
		Set("excerpt", note.Excerpt).
		Set("content", note.Content).
		Set("year_id", note.YearID).
		Set("unit_id", note.UnitID).
		Set("lecturer_id", note.LecturerID).
		Set("difficulty_level", note.Difficulty).
		Set("estimated_read_time", note.EstimatedReadTime).
		Set("is_published", note.IsPublished).
		Set("is_featured", note.IsFeatured).
		// updated_at is handled by trigger
		Where(squirrel.Eq{"id": note.ID}).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building update note SQL")
		return err
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "notes_slug_key") {
			return apperrors.ErrSlugTaken
		}
		if dberrors.IsForeignKeyViolation(err) {
			return apperrors.NewBadRequestError("referenced year, unit or lecturer does not exist")
		}
		logger.Error().Err(err).Int64("id", note.ID).Msg("Error executing update note query")
		return err
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNoteNotFound
	}

	return nil
}

// SetPublished flips the publication flag of one note without touching any
// other column.
func (r *NoteRepository) SetPublished(ctx context.Context, id int64, published bool) error {
	sql, args, err := r.sb.Update("notes").
		Set("is_published", published).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building set published SQL")
		return err
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("id", id).Msg("Error executing set published query")
		return err
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNoteNotFound
	}

	return nil
}

// DeleteNote removes a note by its ID.
func (r *NoteRepository) DeleteNote(ctx context.Context, id int64) error {
	sql, args, err := r.sb.Delete("notes").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building delete note SQL")
		return err
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("id", id).Msg("Error executing delete note query")
		return err
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNoteNotFound
	}

	return nil
}

// IncrementDownloadCount adds one download to a note.
func (r *NoteRepository) IncrementDownloadCount(ctx context.Context, id int64) error {
	sql, args, err := r.sb.Update("notes").
		Set("download_count", squirrel.Expr("download_count + 1")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building increment download count SQL")
		return err
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("id", id).Msg("Error executing increment download count query")
		return err
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNoteNotFound
	}

	return nil
}

// AddViewCounts applies buffered view deltas in one batch. Unknown note IDs
// update zero rows and are silently skipped, which covers notes deleted while
// their views were still buffered.
func (r *NoteRepository) AddViewCounts(ctx context.Context, counts map[int64]int64) error {
	if len(counts) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	for id, delta := range counts {
		sql, args, err := r.sb.Update("notes").
			Set("view_count", squirrel.Expr("view_count + ?", delta)).
			Where(squirrel.Eq{"id": id}).
			ToSql()
		if err != nil {
			logger.Error().Err(err).Int64("id", id).Msg("Error building add view counts SQL")
			return err
		}
		batch.Queue(sql, args...)
	}

	results := r.db.SendBatch(ctx, batch)
	defer results.Close()

	for range counts {
		if _, err := results.Exec(); err != nil {
			logger.Error().Err(err).Msg("Error applying view count batch")
			return err
		}
	}

	return nil
}
