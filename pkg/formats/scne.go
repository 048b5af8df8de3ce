package formats

import (
	"fmt"

	"github.com/Faultbox/scene-export/pkg/encoding"
	"github.com/Faultbox/scene-export/pkg/math"
)

// SCNE file constants.
const (
	SCNEMagic   = "SCNE"
	SCNEVersion = 1

	// SCNENameSize is the width of the object type/name field.
	SCNENameSize = 32

	// SCNEObjectSize is the size of one object record: name, position,
	// rotation quaternion.
	SCNEObjectSize = SCNENameSize + 3*4 + 4*4
)

// SCNE chunk tags.
var (
	ChunkHeader    = MakeChunkTag("HDR ")
	ChunkObjects   = MakeChunkTag("OBJS")
	ChunkCollision = MakeChunkTag("COLL")
)

// SceneObject is one placed entity.
type SceneObject struct {
	Name     string    // Type designation written into the 32-byte field
	Position math.Vec3 // Location
	Rotation math.Quat // Serialized as x, y, z, w
}

// SceneDescriptor is the validated content of one scene export.
type SceneDescriptor struct {
	Objects       []SceneObject
	CollisionPath string // Path to the CMSH file; empty when there is no proxy
}

// HasCollision returns true if a COLLISION chunk will be written.
func (d *SceneDescriptor) HasCollision() bool {
	return d.CollisionPath != ""
}

// SCNEReport describes what an encode actually wrote.
type SCNEReport struct {
	ObjectCount  int
	Chunks       []ChunkTag
	Truncated    []string // Names cut to fit the fixed-width field
	Unnormalized []string // Names written as given but not in NFC form
}

// NameNotes lists object names that were not written exactly as a runtime
// would spell them.
type NameNotes struct {
	Truncated    []string
	Unnormalized []string
}

// HeaderChunk returns the HEADER chunk: magic and format version.
func HeaderChunk() (Chunk, error) {
	p := &payloadBuilder{}
	p.write(uint32(MakeChunkTag(SCNEMagic)))
	p.write(uint32(SCNEVersion))

	data, err := p.bytes()
	if err != nil {
		return Chunk{}, fmt.Errorf("encoding header: %w", err)
	}
	return Chunk{Tag: ChunkHeader, Payload: data}, nil
}

// ObjectsChunk returns the OBJECTS chunk along with notes on names that
// were truncated or are not NFC. It is always produced, even for an empty
// scene.
func ObjectsChunk(objects []SceneObject) (Chunk, NameNotes, error) {
	var notes NameNotes
	if uint64(len(objects)) > MaxCount32 {
		return Chunk{}, notes, fmt.Errorf("%w: %d objects (max %d)", ErrCapacityOverflow, len(objects), uint64(MaxCount32))
	}

	p := &payloadBuilder{}
	p.buf.Grow(4 + len(objects)*SCNEObjectSize)

	p.write(uint32(len(objects)))
	for _, obj := range objects {
		name, cut := encoding.FixedField(obj.Name, SCNENameSize)
		if cut {
			notes.Truncated = append(notes.Truncated, obj.Name)
		}
		if !encoding.IsNFC(obj.Name) {
			notes.Unnormalized = append(notes.Unnormalized, obj.Name)
		}
		p.raw(name)
		p.write(obj.Position.Array())
		p.write([4]float32{obj.Rotation.X, obj.Rotation.Y, obj.Rotation.Z, obj.Rotation.W})
	}

	data, err := p.bytes()
	if err != nil {
		return Chunk{}, NameNotes{}, fmt.Errorf("encoding objects: %w", err)
	}
	return Chunk{Tag: ChunkObjects, Payload: data}, notes, nil
}

// CollisionChunk returns the COLLISION chunk: the raw UTF-8 bytes of path
// with no terminator.
func CollisionChunk(path string) Chunk {
	return Chunk{Tag: ChunkCollision, Payload: []byte(path)}
}

// EncodeSCNE serializes desc as HEADER, OBJECTS and, when a collision proxy
// path is present, COLLISION. The whole stream is assembled in memory.
func EncodeSCNE(desc *SceneDescriptor) ([]byte, *SCNEReport, error) {
	header, err := HeaderChunk()
	if err != nil {
		return nil, nil, err
	}
	objects, notes, err := ObjectsChunk(desc.Objects)
	if err != nil {
		return nil, nil, err
	}

	chunks := []Chunk{header, objects}
	if desc.HasCollision() {
		chunks = append(chunks, CollisionChunk(desc.CollisionPath))
	}

	cw := &ChunkWriter{}
	for _, c := range chunks {
		if err := cw.Write(c); err != nil {
			return nil, nil, err
		}
	}

	return cw.Bytes(), &SCNEReport{
		ObjectCount:  len(desc.Objects),
		Chunks:       cw.Tags(),
		Truncated:    notes.Truncated,
		Unnormalized: notes.Unnormalized,
	}, nil
}
