// Package version holds the catalog of calculation algorithm versions.
// Old versions stay computable forever so stored results remain
// reproducible; the registry only decides which version "latest" means.
package version

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"time"

	"github.com/fairload-app/fairload/internal/store"
)

// Default is the compiled-in fallback when no override is configured.
const Default = "2.0"

var versionPattern = regexp.MustCompile(`^\d+\.\d+(\.\d+)?$`)

// builtin versions ship with the binary and cannot be re-registered.
var builtin = []*store.CalcVersion{
	{
		Version:     "1.0",
		Name:        "Basic multiplier calculation",
		Features:    []string{"base_factors", "priority_weighting"},
		ReleaseDate: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
	},
	{
		Version:     "2.0",
		Name:        "Enhanced contextual calculation",
		Features:    []string{"base_factors", "priority_weighting", "time_complexity", "seasonal", "family_profile"},
		ReleaseDate: time.Date(2024, 9, 1, 0, 0, 0, 0, time.UTC),
		IsDefault:   true,
	},
}

// Registry resolves, validates and registers calculation versions.
// All reads degrade to the builtin catalog when the store is
// unavailable; Latest never fails.
type Registry struct {
	store  store.Store
	logger *slog.Logger
}

func NewRegistry(s store.Store, logger *slog.Logger) *Registry {
	return &Registry{store: s, logger: logger}
}

// Latest returns the version identifier new calculations should use.
// A store-configured default wins; any lookup error is swallowed and
// the compiled default is returned instead.
func (r *Registry) Latest(ctx context.Context) string {
	if r.store != nil {
		v, err := r.store.GetDefaultCalcVersion(ctx)
		if err != nil {
			r.logger.Warn("default version lookup failed, using builtin", "error", err)
		} else if v != "" {
			return v
		}
	}
	return Default
}

// List returns the merged builtin + registered catalog. Registered
// versions never shadow builtin ones.
func (r *Registry) List(ctx context.Context) []*store.CalcVersion {
	merged := make([]*store.CalcVersion, 0, len(builtin))
	seen := make(map[string]bool, len(builtin))
	for _, v := range builtin {
		merged = append(merged, v)
		seen[v.Version] = true
	}
	if r.store != nil {
		registered, err := r.store.GetCalcVersions(ctx)
		if err != nil {
			r.logger.Warn("registered version lookup failed", "error", err)
			return merged
		}
		for _, v := range registered {
			if !seen[v.Version] {
				merged = append(merged, v)
				seen[v.Version] = true
			}
		}
	}
	return merged
}

// IsValid reports whether v names a known calculation version.
func (r *Registry) IsValid(ctx context.Context, v string) bool {
	return r.Details(ctx, v) != nil
}

// Details returns the catalog entry for v, or nil if unknown.
func (r *Registry) Details(ctx context.Context, v string) *store.CalcVersion {
	for _, cv := range r.List(ctx) {
		if cv.Version == v {
			return cv
		}
	}
	return nil
}

// Register validates and persists a new version. It has no effect on
// in-flight calculations; versions are selected per request.
func (r *Registry) Register(ctx context.Context, info *store.CalcVersion) error {
	if info == nil || info.Version == "" {
		return fmt.Errorf("version is required")
	}
	if !versionPattern.MatchString(info.Version) {
		return fmt.Errorf("invalid version format %q: expected major.minor or major.minor.patch", info.Version)
	}
	for _, v := range builtin {
		if v.Version == info.Version {
			return fmt.Errorf("version %s is builtin and cannot be re-registered", info.Version)
		}
	}
	if info.ReleaseDate.IsZero() {
		info.ReleaseDate = time.Now().UTC()
	}
	if err := r.store.RegisterCalcVersion(ctx, info); err != nil {
		return fmt.Errorf("register version: %w", err)
	}
	return nil
}
