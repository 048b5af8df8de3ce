package formats

import (
	"fmt"

	"github.com/Faultbox/scene-export/pkg/math"
)

// CMSHMagic opens every collision mesh file.
const CMSHMagic = "CMSH"

// Face is one host polygon. Only faces with exactly three indices are
// exported; anything else is skipped and reported.
type Face struct {
	Indices []int     // Indices into the owning SubMesh's vertices
	Normal  math.Vec3 // Flat face normal, already in engine axes
}

// SubMesh is the geometry of one host object. Vertices are already
// axis-converted and scaled; the encoder writes them verbatim.
type SubMesh struct {
	Name     string
	Vertices []math.Vec3
	Faces    []Face
}

// SkippedFace records a polygon left out of the export.
type SkippedFace struct {
	Mesh        string // Owning sub-mesh name
	Face        int    // Polygon index within the sub-mesh
	VertexCount int    // Number of corners the polygon had
}

// CMSHReport describes what an encode actually wrote.
type CMSHReport struct {
	VertexCount   int
	TriangleCount int
	Skipped       []SkippedFace
}

// Complete returns true if every input polygon made it into the file.
func (r *CMSHReport) Complete() bool {
	return len(r.Skipped) == 0
}

// CollisionMesh is the merged geometry of all sub-meshes in one shared
// index space. Normals[i] belongs to Triangles[i].
type CollisionMesh struct {
	Vertices  []math.Vec3
	Triangles [][3]uint16
	Normals   []math.Vec3
}

// CMSHSize returns the encoded size of a mesh with v vertices and t
// triangles.
func CMSHSize(v, t int) int {
	return len(CMSHMagic) + 2 + v*12 + 2 + t*6 + t*12
}

// BuildCollisionMesh merges sub-meshes in order. Each sub-mesh's indices
// are offset by the number of vertices that precede it.
func BuildCollisionMesh(meshes []SubMesh) (*CollisionMesh, *CMSHReport, error) {
	total := 0
	for _, sub := range meshes {
		total += len(sub.Vertices)
	}
	if total > MaxCount16 {
		return nil, nil, fmt.Errorf("%w: %d vertices (max %d)", ErrCapacityOverflow, total, MaxCount16)
	}

	mesh := &CollisionMesh{Vertices: make([]math.Vec3, 0, total)}
	report := &CMSHReport{}

	for _, sub := range meshes {
		offset := len(mesh.Vertices)
		mesh.Vertices = append(mesh.Vertices, sub.Vertices...)

		for fi, face := range sub.Faces {
			if len(face.Indices) != 3 {
				report.Skipped = append(report.Skipped, SkippedFace{
					Mesh:        sub.Name,
					Face:        fi,
					VertexCount: len(face.Indices),
				})
				continue
			}

			var tri [3]uint16
			for i, idx := range face.Indices {
				if idx < 0 || idx >= len(sub.Vertices) {
					return nil, nil, fmt.Errorf("%w: mesh %q face %d index %d (mesh has %d vertices)",
						ErrIndexOutOfRange, sub.Name, fi, idx, len(sub.Vertices))
				}
				tri[i] = uint16(offset + idx)
			}
			mesh.Triangles = append(mesh.Triangles, tri)
			mesh.Normals = append(mesh.Normals, face.Normal)
		}
	}

	if len(mesh.Triangles) > MaxCount16 {
		return nil, nil, fmt.Errorf("%w: %d triangles (max %d)", ErrCapacityOverflow, len(mesh.Triangles), MaxCount16)
	}

	report.VertexCount = len(mesh.Vertices)
	report.TriangleCount = len(mesh.Triangles)
	return mesh, report, nil
}

// Encode serializes the mesh in CMSH layout:
//
//	"CMSH" | u16 V | V × f32[3] | u16 T | T × u16[3] | T × f32[3]
func (m *CollisionMesh) Encode() ([]byte, error) {
	if len(m.Vertices) > MaxCount16 {
		return nil, fmt.Errorf("%w: %d vertices (max %d)", ErrCapacityOverflow, len(m.Vertices), MaxCount16)
	}
	if len(m.Triangles) > MaxCount16 {
		return nil, fmt.Errorf("%w: %d triangles (max %d)", ErrCapacityOverflow, len(m.Triangles), MaxCount16)
	}
	if len(m.Normals) != len(m.Triangles) {
		return nil, fmt.Errorf("collision mesh has %d normals for %d triangles", len(m.Normals), len(m.Triangles))
	}
	for i, tri := range m.Triangles {
		for _, idx := range tri {
			if int(idx) >= len(m.Vertices) {
				return nil, fmt.Errorf("%w: triangle %d index %d (mesh has %d vertices)",
					ErrIndexOutOfRange, i, idx, len(m.Vertices))
			}
		}
	}

	p := &payloadBuilder{}
	p.buf.Grow(CMSHSize(len(m.Vertices), len(m.Triangles)))

	p.raw([]byte(CMSHMagic))
	p.write(uint16(len(m.Vertices)))
	for _, v := range m.Vertices {
		p.write(v.Array())
	}
	p.write(uint16(len(m.Triangles)))
	for _, tri := range m.Triangles {
		p.write(tri)
	}
	for _, n := range m.Normals {
		p.write(n.Array())
	}

	data, err := p.bytes()
	if err != nil {
		return nil, fmt.Errorf("encoding CMSH: %w", err)
	}
	return data, nil
}

// EncodeCMSH merges meshes and encodes them. On error no bytes are
// returned.
func EncodeCMSH(meshes []SubMesh) ([]byte, *CMSHReport, error) {
	mesh, report, err := BuildCollisionMesh(meshes)
	if err != nil {
		return nil, nil, err
	}
	data, err := mesh.Encode()
	if err != nil {
		return nil, nil, err
	}
	return data, report, nil
}
