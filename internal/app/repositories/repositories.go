package repositories

import (
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repositories holds all the repository instances
type Repositories struct {
	EventRepository       *EventRepository
	ApplicationRepository *ApplicationRepository
}

// NewRepositories initializes all repositories
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		EventRepository:       NewEventRepository(db),
		ApplicationRepository: NewApplicationRepository(db),
	}
}

// nullIfEmpty maps an empty string to SQL NULL, leaving other values as-is.
// Optional date strings pass through to the persistence layer untouched so
// that the database, not the service, decides whether they are interpretable.
func nullIfEmpty(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}
