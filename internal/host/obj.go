package host

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/Faultbox/scene-export/pkg/math"
)

// ErrInvalidOBJ is returned for malformed Wavefront OBJ input.
var ErrInvalidOBJ = errors.New("invalid OBJ data")

// objBuilder collects one OBJ object. OBJ indices are file-global, so each
// object keeps its own remapping into a local vertex array.
type objBuilder struct {
	obj   Object
	local map[int]int
}

func newOBJBuilder(name string) *objBuilder {
	return &objBuilder{
		obj:   Object{Name: name, Kind: KindMesh, Mesh: &Mesh{}},
		local: make(map[int]int),
	}
}

func (b *objBuilder) vertex(global int, positions [][]float32) int {
	if idx, ok := b.local[global]; ok {
		return idx
	}
	idx := len(b.obj.Mesh.Vertices)
	b.obj.Mesh.Vertices = append(b.obj.Mesh.Vertices, positions[global])
	b.local[global] = idx
	return idx
}

// ParseOBJ reads Wavefront OBJ geometry. Every "o" or "g" statement starts
// a new mesh object; objects without faces are dropped. Only positions,
// normals and faces are read, everything else is ignored.
func ParseOBJ(r io.Reader, name string) ([]Object, error) {
	base := strings.TrimSuffix(filepath.Base(name), filepath.Ext(name))

	var (
		positions [][]float32
		normals   []math.Vec3
		objects   []Object
	)
	current := newOBJBuilder(base)

	flush := func() {
		if len(current.obj.Mesh.Polygons) > 0 {
			objects = append(objects, current.obj)
		}
	}

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		if i := strings.IndexByte(line, '#'); i >= 0 {
			line = line[:i]
		}
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "v", "vn":
			if len(fields) < 4 {
				return nil, fmt.Errorf("%w: line %d: %s needs 3 components", ErrInvalidOBJ, lineNo, fields[0])
			}
			var c [3]float32
			for i := 0; i < 3; i++ {
				f, err := strconv.ParseFloat(fields[i+1], 32)
				if err != nil {
					return nil, fmt.Errorf("%w: line %d: %v", ErrInvalidOBJ, lineNo, err)
				}
				c[i] = float32(f)
			}
			if fields[0] == "v" {
				positions = append(positions, c[:])
			} else {
				normals = append(normals, math.Vec3FromArray(c))
			}

		case "o", "g":
			flush()
			objName := base
			if len(fields) > 1 {
				objName = strings.Join(fields[1:], " ")
			}
			current = newOBJBuilder(objName)

		case "f":
			if len(fields) < 2 {
				return nil, fmt.Errorf("%w: line %d: empty face", ErrInvalidOBJ, lineNo)
			}
			poly, err := parseOBJFace(fields[1:], positions, normals, current)
			if err != nil {
				return nil, fmt.Errorf("%w: line %d: %v", ErrInvalidOBJ, lineNo, err)
			}
			current.obj.Mesh.Polygons = append(current.obj.Mesh.Polygons, poly)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading OBJ: %w", err)
	}
	flush()

	return objects, nil
}

// parseOBJFace reads the corners of an "f" statement. Each corner is
// v, v/vt, v//vn or v/vt/vn with 1-based or negative relative indices.
func parseOBJFace(corners []string, positions [][]float32, normals []math.Vec3, b *objBuilder) (Polygon, error) {
	poly := Polygon{Vertices: make([]int, 0, len(corners))}

	var sum math.Vec3
	allNormals := true

	for _, corner := range corners {
		parts := strings.Split(corner, "/")

		vi, err := objIndex(parts[0], len(positions))
		if err != nil {
			return Polygon{}, fmt.Errorf("vertex %q: %w", corner, err)
		}
		poly.Vertices = append(poly.Vertices, b.vertex(vi, positions))

		if len(parts) == 3 && parts[2] != "" {
			ni, err := objIndex(parts[2], len(normals))
			if err != nil {
				return Polygon{}, fmt.Errorf("normal %q: %w", corner, err)
			}
			sum = sum.Add(normals[ni])
		} else {
			allNormals = false
		}
	}

	if allNormals {
		n := sum.Normalize()
		poly.Normal = []float32{n.X, n.Y, n.Z}
	}
	return poly, nil
}

// objIndex converts an OBJ index into a 0-based index into a list of n
// elements.
func objIndex(s string, n int) (int, error) {
	i, err := strconv.Atoi(s)
	if err != nil {
		return 0, err
	}
	switch {
	case i > 0:
		i--
	case i < 0:
		i += n
	default:
		return 0, errors.New("index 0 is not valid")
	}
	if i < 0 || i >= n {
		return 0, fmt.Errorf("index out of range (have %d)", n)
	}
	return i, nil
}
