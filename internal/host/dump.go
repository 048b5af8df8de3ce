// Package host reads a dump of the content-creation host's scene and turns
// it into the typed records the encoders consume.
//
// The dump is YAML (JSON is accepted as well) written by the host-side
// script. Objects carry the host's object kind, transform and untyped
// custom properties; collections group objects by name.
package host

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Dump errors.
var (
	ErrInvalidDump              = errors.New("invalid host dump")
	ErrMissingCollection        = errors.New("collection not found")
	ErrMultipleCollisionProxies = errors.New("more than one collision proxy")
	ErrInvalidScale             = errors.New("scale must be a finite positive number")
)

// KindMesh is the host object kind carrying polygon data.
const KindMesh = "MESH"

// Custom property names set by level designers in the host.
const (
	PropType            = "type"
	PropIsCollisionMesh = "is_collision_mesh"
	PropCollisionPath   = "collision_path"
)

// Dump is the host scene as written by the host-side script.
type Dump struct {
	Source      string       `yaml:"source"`
	Objects     []Object     `yaml:"objects"`
	Collections []Collection `yaml:"collections"`

	dir string // Directory relative paths are resolved against
}

// Object is one host scene object.
type Object struct {
	Name               string         `yaml:"name"`
	Kind               string         `yaml:"kind"`
	Location           []float32      `yaml:"location"`
	RotationQuaternion *Quaternion    `yaml:"rotation_quaternion"`
	RotationEuler      []float32      `yaml:"rotation_euler"`
	Properties         map[string]any `yaml:"properties"`
	Mesh               *Mesh          `yaml:"mesh"`
}

// Quaternion is a rotation in the host's x, y, z, w components.
type Quaternion struct {
	X float32 `yaml:"x"`
	Y float32 `yaml:"y"`
	Z float32 `yaml:"z"`
	W float32 `yaml:"w"`
}

// Mesh is polygon data in host space, before axis conversion.
type Mesh struct {
	Vertices [][]float32 `yaml:"vertices"`
	Polygons []Polygon   `yaml:"polygons"`
}

// Polygon is one face. Normal is optional; a flat normal is computed from
// the first three corners when it is missing.
type Polygon struct {
	Vertices []int     `yaml:"vertices"`
	Normal   []float32 `yaml:"normal"`
}

// Collection groups objects by name. OBJFiles adds Wavefront OBJ geometry
// to the collection; each OBJ object becomes one mesh object.
type Collection struct {
	Name     string   `yaml:"name"`
	Objects  []string `yaml:"objects"`
	OBJFiles []string `yaml:"obj_files"`
}

// ParseDump parses dump data. Relative paths inside the dump are resolved
// against dir.
func ParseDump(data []byte, dir string) (*Dump, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	d := &Dump{}
	if err := dec.Decode(d); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: empty document", ErrInvalidDump)
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidDump, err)
	}
	d.dir = dir

	seen := make(map[string]bool, len(d.Objects))
	for i, obj := range d.Objects {
		if obj.Name == "" {
			return nil, fmt.Errorf("%w: object %d has no name", ErrInvalidDump, i)
		}
		if seen[obj.Name] {
			return nil, fmt.Errorf("%w: duplicate object name %q", ErrInvalidDump, obj.Name)
		}
		seen[obj.Name] = true
	}

	return d, nil
}

// LoadDump reads and parses a dump file.
func LoadDump(path string) (*Dump, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading host dump: %w", err)
	}
	return ParseDump(data, filepath.Dir(path))
}

// Object returns the object with the given name, or nil.
func (d *Dump) Object(name string) *Object {
	for i := range d.Objects {
		if d.Objects[i].Name == name {
			return &d.Objects[i]
		}
	}
	return nil
}

// Collection returns the collection with the given name, or nil.
func (d *Dump) Collection(name string) *Collection {
	for i := range d.Collections {
		if d.Collections[i].Name == name {
			return &d.Collections[i]
		}
	}
	return nil
}

func (d *Dump) resolve(path string) string {
	if filepath.IsAbs(path) || d.dir == "" {
		return path
	}
	return filepath.Join(d.dir, path)
}
