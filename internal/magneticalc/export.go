package magneticalc

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// SaveWireTXT writes wire points as plain text, one point per line with
// three exponential-notation columns. The format round-trips with the
// numpy savetxt files historically used for wire exchange.
func SaveWireTXT(path string, points []Point3) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	for _, p := range points {
		if _, err := fmt.Fprintf(w, "%.18e %.18e %.18e\n", p.X, p.Y, p.Z); err != nil {
			return err
		}
	}
	return w.Flush()
}

// LoadWireTXT reads a wire point list written by SaveWireTXT (or numpy).
// Blank lines and '#' comments are skipped.
func LoadWireTXT(path string) ([]Point3, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var points []Point3
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		cols := strings.Fields(line)
		if len(cols) != 3 {
			return nil, fmt.Errorf("wire file %s: expected 3 columns, got %d", path, len(cols))
		}
		var p Point3
		if p.X, err = strconv.ParseFloat(cols[0], 64); err != nil {
			return nil, err
		}
		if p.Y, err = strconv.ParseFloat(cols[1], 64); err != nil {
			return nil, err
		}
		if p.Z, err = strconv.ParseFloat(cols[2], 64); err != nil {
			return nil, err
		}
		points = append(points, p)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return points, nil
}

// ContainerFields is the raveled field block of the export container. Its
// key names and shapes are the persisted contract external tools rely on.
type ContainerFields struct {
	Nx int `json:"nx"`
	Ny int `json:"ny"`
	Nz int `json:"nz"`

	X []Real `json:"x"`
	Y []Real `json:"y"`
	Z []Real `json:"z"`

	AX []Real `json:"A_x,omitempty"`
	AY []Real `json:"A_y,omitempty"`
	AZ []Real `json:"A_z,omitempty"`

	BX []Real `json:"B_x,omitempty"`
	BY []Real `json:"B_y,omitempty"`
	BZ []Real `json:"B_z,omitempty"`
}

// ContainerWire is the wire point block of the export container.
type ContainerWire struct {
	X []Real `json:"x"`
	Y []Real `json:"y"`
	Z []Real `json:"z"`
}

// Container bundles the computed fields, the sampling volume axes and the
// wire for persistence and external tooling.
type Container struct {
	Fields      ContainerFields `json:"fields"`
	WirePoints  *ContainerWire  `json:"wire_points,omitempty"`
	WireCurrent Real            `json:"wire_current"`
}

// BuildContainer ravels the sampling volume axes, the field components and
// the wire points into the stable container layout. All arrays are
// co-indexed with the sampling volume's grid points.
func BuildContainer(wire *Wire, volume *SamplingVolume, field *Field) *Container {
	n := volume.Count()
	c := &Container{
		Fields: ContainerFields{
			Nx: volume.Dimension[0],
			Ny: volume.Dimension[1],
			Nz: volume.Dimension[2],
			X:  make([]Real, n),
			Y:  make([]Real, n),
			Z:  make([]Real, n),
		},
		WireCurrent: wire.Current,
	}
	for i, p := range volume.Points {
		c.Fields.X[i], c.Fields.Y[i], c.Fields.Z[i] = p.X, p.Y, p.Z
	}

	ravel := func(vectors []Vector3) (x, y, z []Real) {
		x, y, z = make([]Real, n), make([]Real, n), make([]Real, n)
		for i, v := range vectors {
			x[i], y[i], z[i] = v.X, v.Y, v.Z
		}
		return
	}
	if field != nil && field.A != nil {
		c.Fields.AX, c.Fields.AY, c.Fields.AZ = ravel(field.A)
	}
	if field != nil && field.B != nil {
		c.Fields.BX, c.Fields.BY, c.Fields.BZ = ravel(field.B)
	}

	w := &ContainerWire{
		X: make([]Real, len(wire.Points)),
		Y: make([]Real, len(wire.Points)),
		Z: make([]Real, len(wire.Points)),
	}
	for i, p := range wire.Points {
		w.X[i], w.Y[i], w.Z[i] = p.X, p.Y, p.Z
	}
	c.WirePoints = w

	return c
}

// SaveContainer writes the container as JSON.
func SaveContainer(path string, c *Container) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	enc := json.NewEncoder(w)
	if err := enc.Encode(c); err != nil {
		return err
	}
	return w.Flush()
}

// LoadContainer reads a container written by SaveContainer.
func LoadContainer(path string) (*Container, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var c Container
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, err
	}
	return &c, nil
}
