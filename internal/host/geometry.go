package host

import (
	"fmt"
	"os"

	"github.com/chewxy/math32"

	"github.com/Faultbox/scene-export/pkg/formats"
	"github.com/Faultbox/scene-export/pkg/math"
)

// CollisionMeshes gathers every mesh object in the named collection,
// converted to engine axes and scaled. Objects of other kinds are ignored.
// OBJ files listed on the collection follow the collection's own objects.
func (d *Dump) CollisionMeshes(collection string, scale float32) ([]formats.SubMesh, error) {
	if scale <= 0 || math32.IsInf(scale, 0) || math32.IsNaN(scale) {
		return nil, fmt.Errorf("%w: %v", ErrInvalidScale, scale)
	}

	coll := d.Collection(collection)
	if coll == nil {
		return nil, fmt.Errorf("%w: %q", ErrMissingCollection, collection)
	}

	var meshes []formats.SubMesh
	for _, name := range coll.Objects {
		obj := d.Object(name)
		if obj == nil {
			return nil, fmt.Errorf("%w: collection %q references unknown object %q", ErrInvalidDump, collection, name)
		}
		if obj.Kind != KindMesh {
			continue
		}
		if obj.Mesh == nil {
			return nil, fmt.Errorf("%w: mesh object %q has no mesh data", ErrInvalidDump, obj.Name)
		}

		sub, err := convertMesh(obj.Name, obj.Mesh, scale)
		if err != nil {
			return nil, err
		}
		meshes = append(meshes, sub)
	}

	for _, path := range coll.OBJFiles {
		objects, err := loadOBJFile(d.resolve(path))
		if err != nil {
			return nil, err
		}
		for _, obj := range objects {
			sub, err := convertMesh(obj.Name, obj.Mesh, scale)
			if err != nil {
				return nil, err
			}
			meshes = append(meshes, sub)
		}
	}

	return meshes, nil
}

// convertMesh maps host-space mesh data into an encoder sub-mesh.
func convertMesh(name string, mesh *Mesh, scale float32) (formats.SubMesh, error) {
	sub := formats.SubMesh{
		Name:     name,
		Vertices: make([]math.Vec3, len(mesh.Vertices)),
		Faces:    make([]formats.Face, len(mesh.Polygons)),
	}

	for i, v := range mesh.Vertices {
		hv, err := vec3(v)
		if err != nil {
			return formats.SubMesh{}, fmt.Errorf("%w: mesh %q vertex %d: %v", ErrInvalidDump, name, i, err)
		}
		sub.Vertices[i] = math.ToEngine(hv, scale)
	}

	for i, poly := range mesh.Polygons {
		face := formats.Face{Indices: append([]int(nil), poly.Vertices...)}

		switch {
		case poly.Normal != nil:
			n, err := vec3(poly.Normal)
			if err != nil {
				return formats.SubMesh{}, fmt.Errorf("%w: mesh %q polygon %d normal: %v", ErrInvalidDump, name, i, err)
			}
			face.Normal = math.DirectionToEngine(n)
		case len(poly.Vertices) >= 3 && inRange(poly.Vertices[:3], len(sub.Vertices)):
			face.Normal = math.FaceNormal(
				sub.Vertices[poly.Vertices[0]],
				sub.Vertices[poly.Vertices[1]],
				sub.Vertices[poly.Vertices[2]],
			)
		}

		sub.Faces[i] = face
	}

	return sub, nil
}

func vec3(v []float32) (math.Vec3, error) {
	if len(v) != 3 {
		return math.Vec3{}, fmt.Errorf("expected 3 components, got %d", len(v))
	}
	vec := math.Vec3{X: v[0], Y: v[1], Z: v[2]}
	if !vec.IsFinite() {
		return math.Vec3{}, fmt.Errorf("non-finite component in %v", v)
	}
	return vec, nil
}

func inRange(indices []int, n int) bool {
	for _, idx := range indices {
		if idx < 0 || idx >= n {
			return false
		}
	}
	return true
}

func loadOBJFile(path string) ([]Object, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening OBJ file: %w", err)
	}
	defer f.Close()

	objects, err := ParseOBJ(f, path)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return objects, nil
}
