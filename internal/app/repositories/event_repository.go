package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/derya/castlink/internal/app/models"
	"github.com/derya/castlink/internal/pkg/apperrors"
	"github.com/derya/castlink/internal/pkg/dberrors"
	"github.com/derya/castlink/internal/pkg/logger"
)

// eventColumns are the selected columns of casting_events. Dates are cast to
// text so optional calendar values round-trip as the strings the client sent.
var eventColumns = []string{
	"id",
	"COALESCE(title, '')",
	"COALESCE(description, '')",
	"start_date::text",
	"end_date::text",
	"created_at",
}

// EventRepository handles casting event database operations
type EventRepository struct {
	db *pgxpool.Pool
	// Use squirrel instance with placeholder format
	sb squirrel.StatementBuilderType
}

// NewEventRepository creates a new EventRepository
func NewEventRepository(db *pgxpool.Pool) *EventRepository {
	return &EventRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// CreateEvent inserts a new event and fills in its generated identifier and
// creation timestamp. The identifier is assigned by the database and is
// immutable afterwards. No validation happens here: an uninterpretable date
// is rejected by PostgreSQL, not by this code.
func (r *EventRepository) CreateEvent(ctx context.Context, event *models.Event) error {
	var startDate, endDate interface{}
	if event.StartDate != nil {
		startDate = nullIfEmpty(*event.StartDate)
	}
	if event.EndDate != nil {
		endDate = nullIfEmpty(*event.EndDate)
	}

	sql, args, err := r.sb.Insert("casting_events").
		Columns("title", "description", "start_date", "end_date").
		Values(nullIfEmpty(event.Title), nullIfEmpty(event.Description), startDate, endDate).
		Suffix("RETURNING id, created_at").
		ToSql()

	if err != nil {
		logger.Error().Err(err).Msg("Error building create event SQL")
		return fmt.Errorf("failed to build create event query: %w", err)
	}

	err = r.db.QueryRow(ctx, sql, args...).Scan(&event.ID, &event.CreatedAt)
	if err != nil {
		if dberrors.IsDataFormatError(err) {
			return apperrors.NewBadRequestError("event rejected by the database: " + err.Error())
		}
		logger.Error().Err(err).Msg("Error executing create event query")
		return fmt.Errorf("error creating event: %w", err)
	}

	return nil
}

// GetEventByID retrieves an event by ID
func (r *EventRepository) GetEventByID(ctx context.Context, id uuid.UUID) (*models.Event, error) {
	sql, args, err := r.sb.Select(eventColumns...).
		From("casting_events").
		Where(squirrel.Eq{"id": id}).
		Limit(1).
		ToSql()

	if err != nil {
		logger.Error().Err(err).Msg("Error building get event by ID SQL")
		return nil, fmt.Errorf("failed to build get event query: %w", err)
	}

	event := &models.Event{}
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&event.ID, &event.Title, &event.Description,
		&event.StartDate, &event.EndDate, &event.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrEventNotFound
		}
		logger.Error().Err(err).Str("eventID", id.String()).Msg("Error scanning event row")
		return nil, fmt.Errorf("error getting event by ID: %w", err)
	}

	return event, nil
}

// GetAllEvents retrieves all events, newest first
func (r *EventRepository) GetAllEvents(ctx context.Context) ([]*models.Event, error) {
	sql, args, err := r.sb.Select(eventColumns...).
		From("casting_events").
		OrderBy("created_at DESC").
		ToSql()

	if err != nil {
		logger.Error().Err(err).Msg("Error building get all events SQL")
		return nil, fmt.Errorf("failed to build get all events query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing get all events query")
		return nil, fmt.Errorf("error querying events: %w", err)
	}
	defer rows.Close()

	events := []*models.Event{}
	for rows.Next() {
		event := &models.Event{}
		if err := rows.Scan(
			&event.ID, &event.Title, &event.Description,
			&event.StartDate, &event.EndDate, &event.CreatedAt,
		); err != nil {
			logger.Error().Err(err).Msg("Error scanning event row during get all")
			return nil, fmt.Errorf("error scanning event row: %w", err)
		}
		events = append(events, event)
	}

	if err := rows.Err(); err != nil {
		logger.Error().Err(err).Msg("Error iterating event rows")
		return nil, fmt.Errorf("error iterating event rows: %w", err)
	}

	return events, nil
}

// EventExists reports whether an event with the given ID exists
func (r *EventRepository) EventExists(ctx context.Context, id uuid.UUID) (bool, error) {
	sql, args, err := r.sb.Select("1").
		From("casting_events").
		Where(squirrel.Eq{"id": id}).
		Prefix("SELECT EXISTS (").Suffix(")").
		Limit(1).
		ToSql()

	if err != nil {
		logger.Error().Err(err).Msg("Error building event exists SQL")
		return false, fmt.Errorf("failed to build event existence query: %w", err)
	}

	var exists bool
	err = r.db.QueryRow(ctx, sql, args...).Scan(&exists)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) { // ErrNoRows is ok here, means false
		logger.Error().Err(err).Str("eventID", id.String()).Msg("Error checking event existence")
		return false, fmt.Errorf("error checking event existence: %w", err)
	}

	return exists, nil
}
