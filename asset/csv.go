package asset

import (
	"fmt"
	"io"
	"os"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/gocarina/gocsv"

	"github.com/pthm-cable/morph/shape"
)

// PointRecord is one row of a point cloud CSV file.
type PointRecord struct {
	Shape string  `csv:"shape"`
	X     float32 `csv:"x"`
	Y     float32 `csv:"y"`
	Z     float32 `csv:"z"`
}

// ReadCSV decodes point rows into shapes. Shapes appear in order of their
// first row; rows of one shape need not be contiguous.
func ReadCSV(r io.Reader) ([]shape.Shape, error) {
	var records []PointRecord
	if err := gocsv.Unmarshal(r, &records); err != nil {
		return nil, fmt.Errorf("decoding point csv: %w", err)
	}

	index := make(map[string]int)
	var shapes []shape.Shape
	for _, rec := range records {
		i, ok := index[rec.Shape]
		if !ok {
			i = len(shapes)
			index[rec.Shape] = i
			shapes = append(shapes, shape.Shape{Name: rec.Shape})
		}
		shapes[i].Positions = append(shapes[i].Positions, mgl32.Vec3{rec.X, rec.Y, rec.Z})
	}
	for i := range shapes {
		shapes[i].PointCount = len(shapes[i].Positions)
	}
	return shapes, nil
}

// WriteCSV encodes shapes as point rows with a header.
func WriteCSV(w io.Writer, shapes []shape.Shape) error {
	var records []PointRecord
	for _, s := range shapes {
		for _, p := range s.Positions {
			records = append(records, PointRecord{Shape: s.Name, X: p[0], Y: p[1], Z: p[2]})
		}
	}
	if err := gocsv.Marshal(records, w); err != nil {
		return fmt.Errorf("encoding point csv: %w", err)
	}
	return nil
}

// LoadCSV reads a point cloud CSV file.
func LoadCSV(path string) ([]shape.Shape, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()
	return ReadCSV(f)
}

// SaveCSV writes shapes to a point cloud CSV file.
func SaveCSV(path string, shapes []shape.Shape) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := WriteCSV(f, shapes); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
