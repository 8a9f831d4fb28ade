package db

import (
	"github.com/pkg/errors"

	"github.com/drillsrs/drill/internal/profile"
	"github.com/drillsrs/drill/store"
	"github.com/drillsrs/drill/store/db/postgres"
	"github.com/drillsrs/drill/store/db/sqlite"
)

// NewDBDriver creates new db driver based on profile.
//
// SQLite is the default: a single local file under the data directory, no
// server needed. PostgreSQL is available for people who keep their decks in
// an existing database.
func NewDBDriver(profile *profile.Profile) (store.Driver, error) {
	var driver store.Driver
	var err error

	switch profile.Driver {
	case "sqlite":
		driver, err = sqlite.NewDB(profile)
	case "postgres":
		driver, err = postgres.NewDB(profile)
	default:
		return nil, errors.Errorf("unknown db driver: %q (only 'sqlite' and 'postgres' are supported)", profile.Driver)
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to create db driver")
	}
	return driver, nil
}
