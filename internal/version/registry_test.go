package version

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/fairload-app/fairload/internal/store"
)

// fakeStore stubs only the registry-facing store methods; anything
// else panics via the embedded nil interface.
type fakeStore struct {
	store.Store

	defaultVersion string
	defaultErr     error
	versions       []*store.CalcVersion
	versionsErr    error
	registered     []*store.CalcVersion
	registerErr    error
}

func (f *fakeStore) GetDefaultCalcVersion(ctx context.Context) (string, error) {
	return f.defaultVersion, f.defaultErr
}

func (f *fakeStore) GetCalcVersions(ctx context.Context) ([]*store.CalcVersion, error) {
	return f.versions, f.versionsErr
}

func (f *fakeStore) RegisterCalcVersion(ctx context.Context, v *store.CalcVersion) error {
	if f.registerErr != nil {
		return f.registerErr
	}
	f.registered = append(f.registered, v)
	return nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestLatest(t *testing.T) {
	ctx := context.Background()
	tests := []struct {
		name string
		s    store.Store
		want string
	}{
		{"nil store falls back to builtin", nil, Default},
		{"store error is swallowed", &fakeStore{defaultErr: errors.New("db down")}, Default},
		{"no configured default", &fakeStore{}, Default},
		{"configured default wins", &fakeStore{defaultVersion: "2.1"}, "2.1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewRegistry(tt.s, discardLogger())
			if got := r.Latest(ctx); got != tt.want {
				t.Errorf("Latest() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestListMergesWithoutShadowing(t *testing.T) {
	ctx := context.Background()
	s := &fakeStore{versions: []*store.CalcVersion{
		{Version: "2.0", Name: "impostor"},
		{Version: "2.1", Name: "Registered"},
	}}
	r := NewRegistry(s, discardLogger())

	list := r.List(ctx)
	if len(list) != 3 {
		t.Fatalf("List() returned %d versions, want 3", len(list))
	}
	if d := r.Details(ctx, "2.0"); d == nil || d.Name == "impostor" {
		t.Error("registered version shadowed a builtin")
	}
	if !r.IsValid(ctx, "2.1") {
		t.Error("registered version not valid")
	}
	if r.IsValid(ctx, "0.9") {
		t.Error("unknown version reported valid")
	}
}

func TestListStoreErrorDegradesToBuiltin(t *testing.T) {
	r := NewRegistry(&fakeStore{versionsErr: errors.New("db down")}, discardLogger())
	if got := len(r.List(context.Background())); got != 2 {
		t.Errorf("List() returned %d versions, want builtin 2", got)
	}
}

func TestRegister(t *testing.T) {
	ctx := context.Background()
	tests := []struct {
		name    string
		info    *store.CalcVersion
		wantErr bool
	}{
		{"nil info", nil, true},
		{"empty version", &store.CalcVersion{}, true},
		{"malformed version", &store.CalcVersion{Version: "v3"}, true},
		{"too many segments", &store.CalcVersion{Version: "1.2.3.4"}, true},
		{"builtin collision", &store.CalcVersion{Version: "2.0"}, true},
		{"major.minor", &store.CalcVersion{Version: "2.1", Name: "Next"}, false},
		{"major.minor.patch", &store.CalcVersion{Version: "2.1.1", Name: "Fix"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := &fakeStore{}
			r := NewRegistry(s, discardLogger())
			err := r.Register(ctx, tt.info)
			if (err != nil) != tt.wantErr {
				t.Errorf("Register() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr {
				if len(s.registered) != 1 {
					t.Fatal("version not persisted")
				}
				if s.registered[0].ReleaseDate.IsZero() {
					t.Error("release date not defaulted")
				}
			}
		})
	}
}

func TestRegisterKeepsExplicitReleaseDate(t *testing.T) {
	s := &fakeStore{}
	r := NewRegistry(s, discardLogger())
	release := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	if err := r.Register(context.Background(), &store.CalcVersion{Version: "3.0", ReleaseDate: release}); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if !s.registered[0].ReleaseDate.Equal(release) {
		t.Errorf("release date = %v, want %v", s.registered[0].ReleaseDate, release)
	}
}
