// Package seed creates demo accounts and moments for development databases.
// Everything goes through the repository so seeded rows obey the same rules
// as moments created over the API.
package seed

import (
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"momentzero/internal/countdown"
	"momentzero/internal/models"
	"momentzero/internal/validation"

	"github.com/brianvoe/gofakeit/v6"
)

var (
	themes      = []string{"dark-void", "aurora", "ember", "midnight", "sunrise", "nebula"}
	atmospheres = []string{"void", "aurora", "snow", "stars", "rain", "fireflies"}
	typography  = []string{"serif", "sans", "mono", "display"}
)

// Options controls generated data.
type Options struct {
	// PublicRatio is the share of generated moments that are public, in [0,1].
	PublicRatio float64
	// Seed makes generation deterministic when non-zero.
	Seed int64
}

// Factory builds valid accounts and moments from fake data.
type Factory struct {
	faker *gofakeit.Faker
	opts  Options
	now   func() time.Time
}

// NewFactory returns a Factory. A zero Seed draws from a random source.
func NewFactory(opts Options) *Factory {
	if opts.PublicRatio <= 0 || opts.PublicRatio > 1 {
		opts.PublicRatio = 0.8
	}
	return &Factory{
		faker: gofakeit.New(opts.Seed),
		opts:  opts,
		now:   time.Now,
	}
}

// BuildMoment returns an unsaved account and its moment.
func (f *Factory) BuildMoment() (*models.Account, *models.Moment) {
	account := &models.Account{Username: f.Username()}
	moment := &models.Moment{
		Theme:      f.faker.RandomString(themes),
		Atmosphere: f.faker.RandomString(atmospheres),
		Typography: f.faker.RandomString(typography),
		Message:    f.Wish(),
		TargetYear: f.TargetYear(),
		IsPublic:   f.faker.Float64Range(0, 1) < f.opts.PublicRatio,
	}
	return account, moment
}

// TargetYear is the year generated moments count down to.
func (f *Factory) TargetYear() int {
	return countdown.NextYear(f.now())
}

// Username returns a name that passes username validation.
func (f *Factory) Username() string {
	base := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_', r == '-':
			return r
		}
		return -1
	}, f.faker.Username())
	if len(base) < 3 {
		base = "moment"
	}

	suffix := "_" + strconv.Itoa(f.faker.Number(1000, 9999))
	if limit := validation.UsernameMaxLen - len(suffix); len(base) > limit {
		base = base[:limit]
	}
	return base + suffix
}

// Wish returns a short message within the message limit.
func (f *Factory) Wish() string {
	msg := f.faker.Sentence(f.faker.Number(4, 18))
	for utf8.RuneCountInString(msg) > validation.MessageMaxLen {
		_, size := utf8.DecodeLastRuneInString(msg)
		msg = msg[:len(msg)-size]
	}
	return msg
}
