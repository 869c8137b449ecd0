package magneticalc

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

func TestWireTXT_Roundtrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wire.txt")
	points := []Point3{
		{-0.5, 0.25, 1e-9},
		{0.123456789012345678, -1, 3},
	}

	if err := SaveWireTXT(path, points); err != nil {
		t.Fatal(err)
	}
	loaded, err := LoadWireTXT(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(loaded) != len(points) {
		t.Fatalf("loaded %d points, expected %d", len(loaded), len(points))
	}
	// 18 significant digits round-trip float64 exactly.
	for i := range points {
		if loaded[i] != points[i] {
			t.Fatalf("point %d: %+v != %+v", i, loaded[i], points[i])
		}
	}
}

func TestLoadWireTXT_SkipsComments(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wire.txt")
	content := "# header\n\n0 0 0\n1 0 0\n# trailing\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	points, err := LoadWireTXT(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(points) != 2 || points[1] != (Point3{1, 0, 0}) {
		t.Fatalf("parsed points wrong: %+v", points)
	}
}

func TestLoadWireTXT_RejectsBadColumns(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wire.txt")
	if err := os.WriteFile(path, []byte("0 0\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadWireTXT(path); err == nil {
		t.Fatal("expected error for 2-column line")
	}
}

func TestBuildContainer_Shapes(t *testing.T) {
	wire, _ := NewWire(CircularLoop(1, 16), 2)
	volume := newTestVolume(t, 2, nil)
	engine := NewFieldEngine(DefaultEngineConfig())
	field, err := engine.Compute(context.Background(), wire, volume, FieldRequest{A: true, B: true})
	if err != nil {
		t.Fatal(err)
	}

	c := BuildContainer(wire, volume, field)
	n := volume.Count()

	if c.Fields.Nx != volume.Dimension[0] || c.Fields.Ny != volume.Dimension[1] || c.Fields.Nz != volume.Dimension[2] {
		t.Fatalf("dimensions wrong: %d %d %d", c.Fields.Nx, c.Fields.Ny, c.Fields.Nz)
	}
	for name, arr := range map[string][]Real{
		"x": c.Fields.X, "y": c.Fields.Y, "z": c.Fields.Z,
		"A_x": c.Fields.AX, "A_y": c.Fields.AY, "A_z": c.Fields.AZ,
		"B_x": c.Fields.BX, "B_y": c.Fields.BY, "B_z": c.Fields.BZ,
	} {
		if len(arr) != n {
			t.Fatalf("%s length %d != %d grid points", name, len(arr), n)
		}
	}
	if c.WireCurrent != 2 {
		t.Fatalf("wire current = %g", c.WireCurrent)
	}
	if len(c.WirePoints.X) != len(wire.Points) {
		t.Fatalf("wire points length %d != %d", len(c.WirePoints.X), len(wire.Points))
	}

	// Axes are co-indexed with the grid, X fastest.
	if c.Fields.X[0] != volume.BoundsMin.X || c.Fields.X[1] <= c.Fields.X[0] {
		t.Fatalf("x axis raveling wrong: %g %g", c.Fields.X[0], c.Fields.X[1])
	}
	if c.Fields.Y[0] != c.Fields.Y[1] {
		t.Fatal("y must not vary within an x run")
	}
}

func TestContainer_PersistedKeys(t *testing.T) {
	wire, _ := NewWire(StraightLine.Points, 1)
	volume, err := NewSamplingVolume(Point3{0, 0, 0}, Point3{0, 0, 0}, Vector3{1, 1, 1}, nil)
	if err != nil {
		t.Fatal(err)
	}
	engine := NewFieldEngine(DefaultEngineConfig())
	field, err := engine.Compute(context.Background(), wire, volume, FieldRequest{B: true})
	if err != nil {
		t.Fatal(err)
	}

	data, err := json.Marshal(BuildContainer(wire, volume, field))
	if err != nil {
		t.Fatal(err)
	}
	var doc map[string]json.RawMessage
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatal(err)
	}
	for _, key := range []string{"fields", "wire_points", "wire_current"} {
		if _, ok := doc[key]; !ok {
			t.Fatalf("top-level key %q missing", key)
		}
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(doc["fields"], &fields); err != nil {
		t.Fatal(err)
	}
	for _, key := range []string{"nx", "ny", "nz", "x", "y", "z", "B_x", "B_y", "B_z"} {
		if _, ok := fields[key]; !ok {
			t.Fatalf("fields key %q missing", key)
		}
	}
	// A was not requested and must be absent, not null.
	if _, ok := fields["A_x"]; ok {
		t.Fatal("A_x present without a computed A-field")
	}
}

func TestContainer_Roundtrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "field.json")

	wire, _ := NewWire(StraightLine.Points, 1.5)
	volume := newTestVolume(t, 1, nil)
	engine := NewFieldEngine(DefaultEngineConfig())
	field, err := engine.Compute(context.Background(), wire, volume, FieldRequest{B: true})
	if err != nil {
		t.Fatal(err)
	}

	saved := BuildContainer(wire, volume, field)
	if err := SaveContainer(path, saved); err != nil {
		t.Fatal(err)
	}
	loaded, err := LoadContainer(path)
	if err != nil {
		t.Fatal(err)
	}
	if loaded.WireCurrent != saved.WireCurrent {
		t.Fatalf("current %g != %g", loaded.WireCurrent, saved.WireCurrent)
	}
	if loaded.Fields.Nx != saved.Fields.Nx || len(loaded.Fields.BZ) != len(saved.Fields.BZ) {
		t.Fatal("field block did not round-trip")
	}
	for i := range saved.Fields.BZ {
		if loaded.Fields.BZ[i] != saved.Fields.BZ[i] {
			t.Fatalf("B_z[%d] drifted: %g != %g", i, loaded.Fields.BZ[i], saved.Fields.BZ[i])
		}
	}
}
