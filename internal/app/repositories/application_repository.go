package repositories

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/derya/castlink/internal/app/models"
	"github.com/derya/castlink/internal/pkg/apperrors"
	"github.com/derya/castlink/internal/pkg/dberrors"
	"github.com/derya/castlink/internal/pkg/logger"
)

// applicationColumns are the selected columns of casting_applications.
var applicationColumns = []string{
	"id",
	"event_id",
	"COALESCE(name, '')",
	"COALESCE(age, '')",
	"COALESCE(phone, '')",
	"COALESCE(email, '')",
	"COALESCE(location, '')",
	"COALESCE(gender, '')",
	"COALESCE(native_state, '')",
	"COALESCE(languages, '')",
	"COALESCE(youtube_link, '')",
	"COALESCE(portfolio_link, '')",
	"candidate_photo_url",
	"created_at",
}

// ApplicationRepository handles casting application database operations
type ApplicationRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewApplicationRepository creates a new ApplicationRepository
func NewApplicationRepository(db *pgxpool.Pool) *ApplicationRepository {
	return &ApplicationRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// CreateApplication inserts exactly one application record and fills in its
// generated identifier and creation timestamp. The event reference must name
// an existing event; the foreign key enforces this at write time and a
// violation surfaces as event-not-found. Records are immutable after insert.
func (r *ApplicationRepository) CreateApplication(ctx context.Context, app *models.Application) error {
	var photoURL interface{}
	if app.CandidatePhotoURL != nil {
		photoURL = *app.CandidatePhotoURL
	}

	sql, args, err := r.sb.Insert("casting_applications").
		Columns(
			"event_id", "name", "age", "phone", "email", "location",
			"gender", "native_state", "languages", "youtube_link",
			"portfolio_link", "candidate_photo_url",
		).
		Values(
			app.EventID,
			nullIfEmpty(app.Name),
			nullIfEmpty(app.Age),
			nullIfEmpty(app.Phone),
			nullIfEmpty(app.Email),
			nullIfEmpty(app.Location),
			nullIfEmpty(app.Gender),
			nullIfEmpty(app.NativeState),
			nullIfEmpty(app.Languages),
			nullIfEmpty(app.YouTubeLink),
			nullIfEmpty(app.PortfolioLink),
			photoURL,
		).
		Suffix("RETURNING id, created_at").
		ToSql()

	if err != nil {
		logger.Error().Err(err).Msg("Error building create application SQL")
		return fmt.Errorf("failed to build create application query: %w", err)
	}

	err = r.db.QueryRow(ctx, sql, args...).Scan(&app.ID, &app.CreatedAt)
	if err != nil {
		if dberrors.IsForeignKeyViolation(err, "") {
			return apperrors.ErrEventNotFound
		}
		if dberrors.IsDataFormatError(err) {
			return apperrors.NewBadRequestError("application rejected by the database: " + err.Error())
		}
		logger.Error().Err(err).Str("eventID", app.EventID.String()).Msg("Error executing create application query")
		return fmt.Errorf("error creating application: %w", err)
	}

	return nil
}

// GetApplicationsByEvent retrieves all applications for one event, most
// recent first.
func (r *ApplicationRepository) GetApplicationsByEvent(ctx context.Context, eventID uuid.UUID) ([]*models.Application, error) {
	sql, args, err := r.sb.Select(applicationColumns...).
		From("casting_applications").
		Where(squirrel.Eq{"event_id": eventID}).
		OrderBy("created_at DESC", "id DESC").
		ToSql()

	if err != nil {
		logger.Error().Err(err).Msg("Error building get applications SQL")
		return nil, fmt.Errorf("failed to build get applications query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Str("eventID", eventID.String()).Msg("Error executing get applications query")
		return nil, fmt.Errorf("error querying applications: %w", err)
	}
	defer rows.Close()

	applications := []*models.Application{}
	for rows.Next() {
		app := &models.Application{}
		if err := rows.Scan(
			&app.ID, &app.EventID,
			&app.Name, &app.Age, &app.Phone, &app.Email, &app.Location,
			&app.Gender, &app.NativeState, &app.Languages,
			&app.YouTubeLink, &app.PortfolioLink,
			&app.CandidatePhotoURL, &app.CreatedAt,
		); err != nil {
			logger.Error().Err(err).Msg("Error scanning application row")
			return nil, fmt.Errorf("error scanning application row: %w", err)
		}
		applications = append(applications, app)
	}

	if err := rows.Err(); err != nil {
		logger.Error().Err(err).Msg("Error iterating application rows")
		return nil, fmt.Errorf("error iterating application rows: %w", err)
	}

	return applications, nil
}
