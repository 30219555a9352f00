package restorations

import (
	"context"
	"database/sql"
	"errors"

	"face_hires/clock"
	"face_hires/entities"
)

const insertRestorationQuery string = `
INSERT INTO face_restorations (score, box_x0, box_y0, box_x1, box_y1, relative_size,
                               denoising_strength, mask_blur, inpaint_padding,
                               duration_ms, created_at) VALUES
                            (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?);
`

const getRecentRestorationsQuery string = `
SELECT id, score, box_x0, box_y0, box_x1, box_y1, relative_size,
       denoising_strength, mask_blur, inpaint_padding,
       duration_ms, created_at FROM face_restorations
       ORDER BY created_at DESC LIMIT ?;
`

type sqliteRepo struct {
	dbConn *sql.DB
	clock  clock.Clock
}

type Config struct {
	DB *sql.DB
}

func NewRepository(cfg *Config) (Repository, error) {
	if cfg.DB == nil {
		return nil, errors.New("missing DB parameter")
	}

	newRepo := &sqliteRepo{
		dbConn: cfg.DB,
		clock:  clock.NewClock(),
	}

	return newRepo, nil
}

func (repo *sqliteRepo) Create(ctx context.Context, restoration *entities.FaceRestoration) (*entities.FaceRestoration, error) {
	if restoration.CreatedAt.IsZero() {
		restoration.CreatedAt = repo.clock.Now()
	}

	res, err := repo.dbConn.ExecContext(ctx, insertRestorationQuery,
		restoration.Score, restoration.BoxX0, restoration.BoxY0, restoration.BoxX1, restoration.BoxY1,
		restoration.RelativeSize, restoration.DenoisingStrength, restoration.MaskBlur,
		restoration.InpaintPadding, restoration.DurationMs, restoration.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	lastID, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}

	restoration.ID = lastID

	return restoration, nil
}

func (repo *sqliteRepo) GetRecent(ctx context.Context, limit int) ([]entities.FaceRestoration, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := repo.dbConn.QueryContext(ctx, getRecentRestorationsQuery, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []entities.FaceRestoration
	for rows.Next() {
		var restoration entities.FaceRestoration
		err := rows.Scan(
			&restoration.ID, &restoration.Score,
			&restoration.BoxX0, &restoration.BoxY0, &restoration.BoxX1, &restoration.BoxY1,
			&restoration.RelativeSize, &restoration.DenoisingStrength, &restoration.MaskBlur,
			&restoration.InpaintPadding, &restoration.DurationMs, &restoration.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		result = append(result, restoration)
	}

	return result, rows.Err()
}
