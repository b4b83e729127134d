package convert

import (
	"context"
	"errors"
	"testing"

	"github.com/hashicorp/go-hclog"
)

// ----------------------------------------------------------------------
// command line construction
// ----------------------------------------------------------------------

func TestArgsOrder(t *testing.T) {
	got := args("/in", "/out", "cleaned_units_fix.dxf")
	want := []string{"/in", "/out", "ACAD2018", "DWG", "0", "1", "cleaned_units_fix.dxf"}
	if len(got) != len(want) {
		t.Fatalf("args length = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("args[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestArgsNoFilter(t *testing.T) {
	got := args("/in", "/out", "")
	if len(got) != 6 {
		t.Fatalf("args length = %d, want 6 without filter", len(got))
	}
	if got[len(got)-1] != "1" {
		t.Errorf("last arg = %q, want audit flag", got[len(got)-1])
	}
}

// ----------------------------------------------------------------------
// binary lookup
// ----------------------------------------------------------------------

func TestFindMissing(t *testing.T) {
	// swap in candidates that cannot exist
	saved := candidates
	candidates = []string{"oda-file-converter-does-not-exist-4712"}
	defer func() { candidates = saved }()

	if _, err := Find(); !errors.Is(err, ErrConverterNotFound) {
		t.Errorf("Find() error = %v, want ErrConverterNotFound", err)
	}
	if _, err := New(hclog.NewNullLogger()); !errors.Is(err, ErrConverterNotFound) {
		t.Errorf("New() error = %v, want ErrConverterNotFound", err)
	}
}

func TestFindResolvesPath(t *testing.T) {
	saved := candidates
	candidates = []string{"true"} // always on PATH in test environments
	defer func() { candidates = saved }()

	path, err := Find()
	if err != nil {
		t.Fatalf("Find() error: %v", err)
	}
	if path == "" {
		t.Fatal("Find() returned empty path")
	}
}

func TestToDWGRunsBinary(t *testing.T) {
	// use /bin/true as a stand-in converter: success, no output
	c := &Converter{Path: "true", Log: hclog.NewNullLogger()}
	if err := c.ToDWG(context.Background(), t.TempDir(), t.TempDir(), ""); err != nil {
		t.Errorf("ToDWG() error: %v", err)
	}
}

func TestToDWGSurfacesFailure(t *testing.T) {
	c := &Converter{Path: "false", Log: hclog.NewNullLogger()}
	if err := c.ToDWG(context.Background(), t.TempDir(), t.TempDir(), ""); err == nil {
		t.Error("ToDWG() with failing binary should return an error")
	}
}
