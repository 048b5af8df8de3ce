package formats

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

// ErrChunkTooLarge is returned when a payload does not fit the 32-bit
// length field.
var ErrChunkTooLarge = errors.New("chunk payload exceeds 32-bit length")

// ChunkHeaderSize is the size of the tag and length fields preceding every
// payload.
const ChunkHeaderSize = 8

// ChunkTag identifies a chunk. It is four ASCII bytes read as a big-endian
// 32-bit integer.
type ChunkTag uint32

// MakeChunkTag packs a four-character tag.
func MakeChunkTag(s string) ChunkTag {
	if len(s) != 4 {
		panic(fmt.Sprintf("chunk tag %q must be 4 bytes", s))
	}
	return ChunkTag(binary.BigEndian.Uint32([]byte(s)))
}

// String returns the tag as its four ASCII characters.
func (t ChunkTag) String() string {
	var b [4]byte
	binary.BigEndian.PutUint32(b[:], uint32(t))
	return string(b[:])
}

// Chunk is a self-describing record: tag, payload length, payload.
type Chunk struct {
	Tag     ChunkTag
	Payload []byte
}

// WriteChunk frames payload under tag and writes it to w. The length field
// is always derived from the payload.
func WriteChunk(w io.Writer, tag ChunkTag, payload []byte) error {
	if uint64(len(payload)) > MaxCount32 {
		return fmt.Errorf("%w: %s is %d bytes", ErrChunkTooLarge, tag, len(payload))
	}

	var header [ChunkHeaderSize]byte
	binary.BigEndian.PutUint32(header[0:4], uint32(tag))
	binary.BigEndian.PutUint32(header[4:8], uint32(len(payload)))

	if _, err := w.Write(header[:]); err != nil {
		return fmt.Errorf("writing %s chunk header: %w", tag, err)
	}
	if _, err := w.Write(payload); err != nil {
		return fmt.Errorf("writing %s chunk payload: %w", tag, err)
	}
	return nil
}

// ChunkWriter assembles a sequence of framed chunks in memory.
type ChunkWriter struct {
	buf  bytes.Buffer
	tags []ChunkTag
}

// Write frames c and appends it to the stream.
func (cw *ChunkWriter) Write(c Chunk) error {
	if err := WriteChunk(&cw.buf, c.Tag, c.Payload); err != nil {
		return err
	}
	cw.tags = append(cw.tags, c.Tag)
	return nil
}

// Tags returns the tags written so far, in order.
func (cw *ChunkWriter) Tags() []ChunkTag {
	return append([]ChunkTag(nil), cw.tags...)
}

// Bytes returns the assembled stream.
func (cw *ChunkWriter) Bytes() []byte {
	return cw.buf.Bytes()
}

// payloadBuilder writes big-endian fields into a payload. The first write
// error sticks and every later call becomes a no-op.
type payloadBuilder struct {
	buf bytes.Buffer
	err error
}

func (p *payloadBuilder) write(v any) {
	if p.err != nil {
		return
	}
	p.err = binary.Write(&p.buf, binary.BigEndian, v)
}

func (p *payloadBuilder) raw(b []byte) {
	if p.err != nil {
		return
	}
	_, p.err = p.buf.Write(b)
}

func (p *payloadBuilder) bytes() ([]byte, error) {
	if p.err != nil {
		return nil, p.err
	}
	return p.buf.Bytes(), nil
}
