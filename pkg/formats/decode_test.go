package formats

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/Faultbox/scene-export/pkg/encoding"
	"github.com/Faultbox/scene-export/pkg/math"
)

// Test-only readers for the encoded formats, written the way the runtime
// loader consumes them.

var errTruncated = errors.New("truncated data")

func decodeCMSH(data []byte) (*CollisionMesh, error) {
	r := bytes.NewReader(data)

	magic := make([]byte, 4)
	if _, err := io.ReadFull(r, magic); err != nil {
		return nil, errTruncated
	}
	if string(magic) != CMSHMagic {
		return nil, fmt.Errorf("invalid magic %q", magic)
	}

	mesh := &CollisionMesh{}

	var vertexCount uint16
	if err := binary.Read(r, binary.BigEndian, &vertexCount); err != nil {
		return nil, fmt.Errorf("%w: vertex count", errTruncated)
	}
	for i := 0; i < int(vertexCount); i++ {
		var v [3]float32
		if err := binary.Read(r, binary.BigEndian, &v); err != nil {
			return nil, fmt.Errorf("%w: vertex %d", errTruncated, i)
		}
		mesh.Vertices = append(mesh.Vertices, math.Vec3FromArray(v))
	}

	var triangleCount uint16
	if err := binary.Read(r, binary.BigEndian, &triangleCount); err != nil {
		return nil, fmt.Errorf("%w: triangle count", errTruncated)
	}
	for i := 0; i < int(triangleCount); i++ {
		var tri [3]uint16
		if err := binary.Read(r, binary.BigEndian, &tri); err != nil {
			return nil, fmt.Errorf("%w: triangle %d", errTruncated, i)
		}
		mesh.Triangles = append(mesh.Triangles, tri)
	}
	for i := 0; i < int(triangleCount); i++ {
		var n [3]float32
		if err := binary.Read(r, binary.BigEndian, &n); err != nil {
			return nil, fmt.Errorf("%w: normal %d", errTruncated, i)
		}
		mesh.Normals = append(mesh.Normals, math.Vec3FromArray(n))
	}

	if r.Len() != 0 {
		return nil, fmt.Errorf("%d trailing bytes", r.Len())
	}
	return mesh, nil
}

// scanChunks walks a chunk stream using only the length fields.
func scanChunks(data []byte) ([]Chunk, error) {
	var chunks []Chunk
	for len(data) > 0 {
		if len(data) < ChunkHeaderSize {
			return nil, fmt.Errorf("%w: chunk header", errTruncated)
		}
		tag := ChunkTag(binary.BigEndian.Uint32(data[0:4]))
		length := binary.BigEndian.Uint32(data[4:8])
		data = data[ChunkHeaderSize:]
		if uint64(len(data)) < uint64(length) {
			return nil, fmt.Errorf("%w: %s payload", errTruncated, tag)
		}
		chunks = append(chunks, Chunk{Tag: tag, Payload: data[:length]})
		data = data[length:]
	}
	return chunks, nil
}

func decodeObjects(payload []byte) ([]SceneObject, error) {
	r := bytes.NewReader(payload)

	var count uint32
	if err := binary.Read(r, binary.BigEndian, &count); err != nil {
		return nil, fmt.Errorf("%w: object count", errTruncated)
	}

	objects := make([]SceneObject, 0, count)
	for i := 0; i < int(count); i++ {
		name := make([]byte, SCNENameSize)
		if _, err := io.ReadFull(r, name); err != nil {
			return nil, fmt.Errorf("%w: object %d name", errTruncated, i)
		}
		var pos [3]float32
		var rot [4]float32
		if err := binary.Read(r, binary.BigEndian, &pos); err != nil {
			return nil, fmt.Errorf("%w: object %d position", errTruncated, i)
		}
		if err := binary.Read(r, binary.BigEndian, &rot); err != nil {
			return nil, fmt.Errorf("%w: object %d rotation", errTruncated, i)
		}
		objects = append(objects, SceneObject{
			Name:     encoding.ReadFixedField(name),
			Position: math.Vec3FromArray(pos),
			Rotation: math.Quat{X: rot[0], Y: rot[1], Z: rot[2], W: rot[3]},
		})
	}

	if r.Len() != 0 {
		return nil, fmt.Errorf("%d trailing bytes in objects chunk", r.Len())
	}
	return objects, nil
}
