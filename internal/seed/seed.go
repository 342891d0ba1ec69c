package seed

import (
	"context"
	"fmt"
	"log"

	"momentzero/internal/cache"
	"momentzero/internal/models"
	"momentzero/internal/repository"

	"gorm.io/gorm"
)

// showcase moments are always present after seeding.
var showcase = []struct {
	username string
	moment   models.Moment
}{
	{"aurora_dreamer", models.Moment{Theme: "aurora", Atmosphere: "aurora", Typography: "serif", Message: "May the coming year be brighter than the lights above.", IsPublic: true}},
	{"midnight_owl", models.Moment{Theme: "midnight", Atmosphere: "stars", Typography: "mono", Message: "Ship the thing. Sleep more.", IsPublic: true}},
	{"quiet_ember", models.Moment{Theme: "ember", Atmosphere: "snow", Typography: "sans", Message: "Call home more often.", IsPublic: false}},
}

// Seeder writes demo data through the moment repository.
type Seeder struct {
	db      *gorm.DB
	repo    repository.MomentRepository
	factory *Factory
	index   *cache.UsernameIndex
}

// NewSeeder returns a Seeder bound to db.
func NewSeeder(db *gorm.DB, opts Options) *Seeder {
	return &Seeder{
		db:      db,
		repo:    repository.NewMomentRepository(db),
		factory: NewFactory(opts),
	}
}

// WithIndex sets the username index that ClearAll resets.
func (s *Seeder) WithIndex(index *cache.UsernameIndex) *Seeder {
	s.index = index
	return s
}

// Showcase creates the fixed demo moments. Existing usernames are left alone,
// so it can run on every start.
func (s *Seeder) Showcase(ctx context.Context) (int, error) {
	created := 0
	for _, item := range showcase {
		moment := item.moment
		moment.TargetYear = s.factory.TargetYear()
		err := s.repo.CreateWithAccount(ctx, &models.Account{Username: item.username}, &moment)
		switch {
		case err == nil:
			created++
		case models.IsCode(err, models.CodeConflict):
		default:
			return created, fmt.Errorf("seed %s: %w", item.username, err)
		}
	}
	return created, nil
}

// Moments creates n generated moments. Username collisions are retried a
// bounded number of times before giving up on that slot.
func (s *Seeder) Moments(ctx context.Context, n int) (int, error) {
	created := 0
	for i := 0; i < n; i++ {
		var err error
		for attempt := 0; attempt < 3; attempt++ {
			account, moment := s.factory.BuildMoment()
			if err = s.repo.CreateWithAccount(ctx, account, moment); !models.IsCode(err, models.CodeConflict) {
				break
			}
		}
		switch {
		case err == nil:
			created++
		case models.IsCode(err, models.CodeConflict):
			log.Printf("skipping moment %d: username collisions", i)
		default:
			return created, fmt.Errorf("seed moment %d: %w", i, err)
		}
	}
	return created, nil
}

// ClearAll removes every account; moments go with them through the cascade.
// The username index is emptied with them.
func (s *Seeder) ClearAll(ctx context.Context) error {
	if err := s.db.WithContext(ctx).Session(&gorm.Session{AllowGlobalUpdate: true}).
		Delete(&models.Account{}).Error; err != nil {
		return fmt.Errorf("clear accounts: %w", err)
	}
	if err := s.index.Reset(ctx); err != nil {
		return fmt.Errorf("reset username index: %w", err)
	}
	return nil
}
