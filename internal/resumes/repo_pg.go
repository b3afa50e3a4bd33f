package resumes

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

const resumeColumns = `id, user_id, file_name, mime_type, size_bytes, storage_key, content, word_count, engine, analyzed, analysis, created_at, analyzed_at`

// Create inserts a new resume.
func (r *PGRepo) Create(ctx context.Context, res Resume) error {
	const query = `
INSERT INTO resumes (
    id,
    user_id,
    file_name,
    mime_type,
    size_bytes,
    storage_key,
    content,
    word_count,
    engine,
    analyzed,
    created_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	var storageKey sql.NullString
	if res.StorageKey != "" {
		storageKey = sql.NullString{String: res.StorageKey, Valid: true}
	}

	_, err := r.DB.ExecContext(
		ctx,
		query,
		res.ID,
		res.UserID,
		res.FileName,
		res.MimeType,
		res.SizeBytes,
		storageKey,
		res.Content,
		res.WordCount,
		res.Engine,
		res.Analyzed,
		res.CreatedAt,
	)
	return err
}

// GetByID fetches a resume by ID for a user.
func (r *PGRepo) GetByID(ctx context.Context, userID, id string) (Resume, error) {
	const query = `
SELECT ` + resumeColumns + `
FROM resumes
WHERE user_id = $1 AND id = $2
LIMIT 1`
	return r.scanOne(r.DB.QueryRowContext(ctx, query, userID, id))
}

// GetLatestAnalyzed fetches the most recently analyzed resume for a user.
func (r *PGRepo) GetLatestAnalyzed(ctx context.Context, userID string) (Resume, error) {
	const query = `
SELECT ` + resumeColumns + `
FROM resumes
WHERE user_id = $1 AND analyzed = TRUE
ORDER BY analyzed_at DESC
LIMIT 1`
	return r.scanOne(r.DB.QueryRowContext(ctx, query, userID))
}

// ListByUser returns resumes newest first, honoring limit/offset.
func (r *PGRepo) ListByUser(ctx context.Context, userID string, limit, offset int) ([]Resume, error) {
	const query = `
SELECT ` + resumeColumns + `
FROM resumes
WHERE user_id = $1
ORDER BY created_at DESC
LIMIT $2 OFFSET $3`

	rows, err := r.DB.QueryContext(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Resume{}
	for rows.Next() {
		res, err := scanResume(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, res)
	}
	return out, rows.Err()
}

// SaveAnalysis records the analysis payload for a resume.
func (r *PGRepo) SaveAnalysis(ctx context.Context, userID, id string, analysis []byte, analyzedAt time.Time) error {
	const query = `
UPDATE resumes
SET analyzed = TRUE, analysis = $3, analyzed_at = $4
WHERE user_id = $1 AND id = $2`

	result, err := r.DB.ExecContext(ctx, query, userID, id, analysis, analyzedAt)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PGRepo) scanOne(row *sql.Row) (Resume, error) {
	res, err := scanResume(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Resume{}, ErrNotFound
		}
		return Resume{}, err
	}
	return res, nil
}

func scanResume(scan func(...any) error) (Resume, error) {
	var res Resume
	var storageKey sql.NullString
	var analysis []byte
	var analyzedAt sql.NullTime

	err := scan(
		&res.ID,
		&res.UserID,
		&res.FileName,
		&res.MimeType,
		&res.SizeBytes,
		&storageKey,
		&res.Content,
		&res.WordCount,
		&res.Engine,
		&res.Analyzed,
		&analysis,
		&res.CreatedAt,
		&analyzedAt,
	)
	if err != nil {
		return Resume{}, err
	}
	if storageKey.Valid {
		res.StorageKey = storageKey.String
	}
	res.AnalysisJSON = analysis
	if analyzedAt.Valid {
		res.AnalyzedAt = &analyzedAt.Time
	}
	return res, nil
}
