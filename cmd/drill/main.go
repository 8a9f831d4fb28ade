package main

import (
	"context"
	"fmt"
	"io"
	"math/rand"
	"os"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/drillsrs/drill/internal/console"
	"github.com/drillsrs/drill/internal/errkind"
	"github.com/drillsrs/drill/internal/profile"
	"github.com/drillsrs/drill/store"
	"github.com/drillsrs/drill/store/db"
)

var version = "0.9.0"

var rootCmd = &cobra.Command{
	Use:           "drill",
	Short:         "Spaced repetition flashcard program for learning anything",
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// cons is the shared terminal surface. Commands and session engines print
// through it so tests can script the whole interaction.
var cons = console.New(os.Stdin, os.Stdout)

func init() {
	rootCmd.PersistentFlags().String("mode", "prod", `mode of drill, can be "prod" or "dev"`)
	rootCmd.PersistentFlags().String("data", "", "directory where decks are kept")
	rootCmd.PersistentFlags().String("driver", "sqlite", `database driver, can be "sqlite" or "postgres"`)
	rootCmd.PersistentFlags().String("dsn", "", "database connection string")

	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		panic(err)
	}
	viper.SetEnvPrefix("drill")
	viper.AutomaticEnv()
}

// withStore opens the configured database, initializes the schema on first
// run, and hands a ready store to fn. The store is closed when fn returns.
func withStore(ctx context.Context, fn func(ctx context.Context, s *store.Store) error) error {
	p := &profile.Profile{
		Mode:    viper.GetString("mode"),
		Data:    viper.GetString("data"),
		Driver:  viper.GetString("driver"),
		DSN:     viper.GetString("dsn"),
		Version: version,
	}
	if err := p.Validate(); err != nil {
		return errors.Wrap(err, "invalid configuration")
	}

	driver, err := db.NewDBDriver(p)
	if err != nil {
		return err
	}

	s := store.New(driver, p)
	defer s.Close()

	if err := s.Migrate(ctx); err != nil {
		return errors.Wrap(err, "failed to initialize database")
	}
	return fn(ctx, s)
}

// newSessionRand seeds the RNG used for shuffling and reinsertion.
func newSessionRand() *rand.Rand {
	return rand.New(rand.NewSource(time.Now().UnixNano()))
}

func main() {
	err := rootCmd.ExecuteContext(context.Background())
	if err == nil {
		return
	}

	// EOF on the interactive prompt means the user hit Ctrl-D; everything
	// answered so far is already committed.
	if errors.Is(err, io.EOF) {
		fmt.Println()
		fmt.Println("Interrupted.")
		return
	}
	if errkind.IsDomain(err) {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	fmt.Fprintf(os.Stderr, "error: %v\n", err)
	os.Exit(1)
}
