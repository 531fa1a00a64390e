package migrate

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"strings"

	"go.uber.org/multierr"
)

var (
	sqlFileRe = regexp.MustCompile(`^(\d{14})_[a-z0-9_]+\.sql$`)
)

// ValidateDir checks every driver subdirectory of dir and requires that all
// drivers carry the same set of migration versions. Every problem found is
// reported, not only the first.
func ValidateDir(dir string) error {
	if dir == "" {
		return fmt.Errorf("dir is required")
	}

	var (
		errs      error
		reference []string
		refDriver string
	)
	for _, driver := range Drivers {
		versions, err := validateDriverDir(DirFor(dir, driver))
		errs = multierr.Append(errs, err)
		if versions == nil {
			continue
		}
		if refDriver == "" {
			reference, refDriver = versions, driver
			continue
		}
		if !slices.Equal(reference, versions) {
			errs = multierr.Append(errs, fmt.Errorf("migration versions differ between %s %v and %s %v", refDriver, reference, driver, versions))
		}
	}
	return errs
}

// validateDriverDir validates migration filenames + basic SQL headers and
// returns the sorted versions found. versions is nil only when dir is unreadable.
func validateDriverDir(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read dir %q: %w", dir, err)
	}

	var errs error
	seen := map[string]string{} // version -> filename
	versions := []string{}

	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		if !strings.HasSuffix(name, ".sql") {
			continue
		}

		m := sqlFileRe.FindStringSubmatch(name)
		if m == nil {
			errs = multierr.Append(errs, fmt.Errorf("%s: invalid migration filename %q (expected YYYYMMDDHHMMSS_name.sql)", dir, name))
			continue
		}

		version := m[1]
		if prev, ok := seen[version]; ok {
			errs = multierr.Append(errs, fmt.Errorf("%s: duplicate migration version %s in %q and %q", dir, version, prev, name))
			continue
		}
		seen[version] = name
		versions = append(versions, version)

		full := filepath.Join(dir, name)
		b, err := os.ReadFile(full)
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("read file %q: %w", full, err))
			continue
		}

		txt := string(b)
		if !strings.Contains(txt, "-- +goose Up") {
			errs = multierr.Append(errs, fmt.Errorf("migration %q missing \"-- +goose Up\"", full))
		}
		if !strings.Contains(txt, "-- +goose Down") {
			errs = multierr.Append(errs, fmt.Errorf("migration %q missing \"-- +goose Down\"", full))
		}
	}

	slices.Sort(versions)
	return versions, errs
}
