package profile

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
)

// Profile is the runtime configuration for the drill CLI.
type Profile struct {
	// Mode can be "prod" or "dev"
	Mode string
	// Data is the data directory where decks are kept
	Data string
	// Driver is the database driver (sqlite or postgres)
	Driver string
	// DSN points to where drill stores its decks
	DSN string
	// Version is the current version of the binary
	Version string
}

func (p *Profile) IsDev() bool {
	return p.Mode != "prod"
}

func checkDataDir(dataDir string) (string, error) {
	// Convert to absolute path if relative path is supplied.
	if !filepath.IsAbs(dataDir) {
		absDir, err := filepath.Abs(dataDir)
		if err != nil {
			return "", err
		}
		dataDir = absDir
	}

	// Trim trailing \ or / in case user supplies
	dataDir = strings.TrimRight(dataDir, "\\/")
	if err := os.MkdirAll(dataDir, 0o770); err != nil {
		return "", errors.Wrapf(err, "unable to create data folder %s", dataDir)
	}
	return dataDir, nil
}

// defaultDataDir follows the XDG convention: $XDG_DATA_HOME/drill, falling
// back to ~/.local/share/drill.
func defaultDataDir() string {
	if dir := os.Getenv("XDG_DATA_HOME"); dir != "" {
		return filepath.Join(dir, "drill")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "drill"
	}
	return filepath.Join(home, ".local", "share", "drill")
}

func (p *Profile) Validate() error {
	if p.Mode != "dev" && p.Mode != "prod" {
		p.Mode = "prod"
	}

	if p.Driver == "" {
		p.Driver = "sqlite"
	}

	if p.Data == "" {
		p.Data = defaultDataDir()
	}

	dataDir, err := checkDataDir(p.Data)
	if err != nil {
		return err
	}
	p.Data = dataDir

	if p.Driver == "sqlite" && p.DSN == "" {
		dbFile := fmt.Sprintf("decks_%s.db", p.Mode)
		if p.Mode == "prod" {
			dbFile = "decks.db"
		}
		p.DSN = filepath.Join(dataDir, dbFile)
	}
	if p.Driver == "postgres" && p.DSN == "" {
		return errors.New("a DSN is required for the postgres driver")
	}

	return nil
}
