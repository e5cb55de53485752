package health

import (
	"context"
	"sort"
	"time"

	"catalog-aggregator/core/database"
	"catalog-aggregator/feature/catalog/models"

	"gorm.io/gorm"
)

const (
	StatusOK          = "ok"
	StatusUnavailable = "unavailable"
)

// Liveness reports that the process is serving requests.
type Liveness struct {
	Status        string    `json:"status"`
	Timestamp     time.Time `json:"timestamp"`
	UptimeSeconds int64     `json:"uptimeSeconds"`
}

// Readiness reports whether the catalog database can serve traffic.
type Readiness struct {
	Status         string              `json:"status"`
	Timestamp      time.Time           `json:"timestamp"`
	Database       string              `json:"database"`
	MissingColumns map[string][]string `json:"missingColumns,omitempty"`
	Error          string              `json:"error,omitempty"`
}

// Ready reports whether every check passed.
func (r Readiness) Ready() bool {
	return r.Status == StatusOK
}

// Service runs liveness and readiness checks.
type Service struct {
	db        *gorm.DB
	required  map[string][]string
	startedAt time.Time
	now       func() time.Time
}

// NewService creates a Service. db may be nil, in which case the service is never ready.
func NewService(db *gorm.DB) *Service {
	now := func() time.Time { return time.Now().UTC() }
	return &Service{
		db:        db,
		required:  models.RequiredColumns(),
		startedAt: now(),
		now:       now,
	}
}

// Live returns the liveness report.
func (s *Service) Live() Liveness {
	now := s.now()
	return Liveness{
		Status:        StatusOK,
		Timestamp:     now,
		UptimeSeconds: int64(now.Sub(s.startedAt).Seconds()),
	}
}

// Ready pings the database and checks that every table has the columns the service uses.
func (s *Service) Ready(ctx context.Context) Readiness {
	r := Readiness{Status: StatusUnavailable, Timestamp: s.now(), Database: StatusUnavailable}
	if s.db == nil {
		r.Error = "database not configured"
		return r
	}

	if err := database.Ping(ctx, s.db); err != nil {
		r.Error = err.Error()
		return r
	}
	r.Database = StatusOK

	tables := make([]string, 0, len(s.required))
	for table := range s.required {
		tables = append(tables, table)
	}
	sort.Strings(tables)

	for _, table := range tables {
		missing, err := database.MissingColumns(s.db.WithContext(ctx), table, s.required[table])
		if err != nil {
			r.Error = err.Error()
			return r
		}
		if len(missing) > 0 {
			if r.MissingColumns == nil {
				r.MissingColumns = make(map[string][]string)
			}
			r.MissingColumns[table] = missing
		}
	}
	if len(r.MissingColumns) > 0 {
		r.Error = "schema is missing required columns"
		return r
	}

	r.Status = StatusOK
	return r
}
