// Package export runs one-shot collision and scene exports: collect from a
// host source, encode, then write the result to an output file.
package export

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/Faultbox/scene-export/pkg/formats"
)

// CollisionSource supplies collision geometry, already converted to engine
// axes and scaled.
type CollisionSource interface {
	CollisionMeshes(collection string, scale float32) ([]formats.SubMesh, error)
}

// SceneSource supplies the scene descriptor.
type SceneSource interface {
	SceneDescriptor() (*formats.SceneDescriptor, error)
}

// Exporter runs exports and reports progress. Out receives the
// human-readable report; Log receives diagnostics.
type Exporter struct {
	Log *zap.Logger
	Out io.Writer
}

// New creates an exporter. A nil logger is replaced with a no-op logger and
// a nil writer discards the report.
func New(log *zap.Logger, out io.Writer) *Exporter {
	if log == nil {
		log = zap.NewNop()
	}
	if out == nil {
		out = io.Discard
	}
	return &Exporter{Log: log, Out: out}
}

// Collision exports the named collection as a CMSH file. Nothing is written
// when collection or encoding fails.
func (e *Exporter) Collision(src CollisionSource, collection string, scale float32, outputPath string) (*formats.CMSHReport, error) {
	meshes, err := src.CollisionMeshes(collection, scale)
	if err != nil {
		return nil, fmt.Errorf("collecting collision geometry: %w", err)
	}
	e.Log.Debug("collected collision geometry",
		zap.String("collection", collection),
		zap.Int("meshes", len(meshes)),
		zap.Float32("scale", scale))

	data, report, err := formats.EncodeCMSH(meshes)
	if err != nil {
		return nil, fmt.Errorf("encoding collision mesh: %w", err)
	}

	for _, s := range report.Skipped {
		e.Log.Warn("skipped non-triangle face",
			zap.String("mesh", s.Mesh),
			zap.Int("face", s.Face),
			zap.Int("vertices", s.VertexCount))
	}

	fmt.Fprintf(e.Out, "Vertices: %d\n", report.VertexCount)
	fmt.Fprintf(e.Out, "Triangles: %d\n", report.TriangleCount)
	if !report.Complete() {
		fmt.Fprintf(e.Out, "Skipped faces: %d (triangulate before export)\n", len(report.Skipped))
	}

	if err := WriteFileAtomic(outputPath, data); err != nil {
		return nil, err
	}

	e.Log.Info("collision export complete",
		zap.String("path", outputPath),
		zap.Int("bytes", len(data)))
	fmt.Fprintf(e.Out, "Collision data successfully written to %s\n", outputPath)

	return report, nil
}

// Scene exports the scene descriptor as an SCNE file.
func (e *Exporter) Scene(src SceneSource, outputPath string) (*formats.SCNEReport, error) {
	desc, err := src.SceneDescriptor()
	if err != nil {
		return nil, fmt.Errorf("collecting scene objects: %w", err)
	}

	data, report, err := formats.EncodeSCNE(desc)
	if err != nil {
		return nil, fmt.Errorf("encoding scene: %w", err)
	}

	for _, name := range report.Truncated {
		e.Log.Warn("object name truncated",
			zap.String("name", name),
			zap.Int("limit", formats.SCNENameSize))
	}

	for _, name := range report.Unnormalized {
		e.Log.Warn("object name is not NFC, written as given",
			zap.String("name", name))
	}

	fmt.Fprintf(e.Out, "Objects: %d\n", report.ObjectCount)
	fmt.Fprintf(e.Out, "Chunks: %s\n", chunkList(report.Chunks))
	if desc.HasCollision() {
		fmt.Fprintf(e.Out, "Collision: %s\n", desc.CollisionPath)
	}

	if err := WriteFileAtomic(outputPath, data); err != nil {
		return nil, err
	}

	e.Log.Info("scene export complete",
		zap.String("path", outputPath),
		zap.Int("objects", report.ObjectCount),
		zap.Int("bytes", len(data)))
	fmt.Fprintf(e.Out, "Scene successfully written to %s\n", outputPath)

	return report, nil
}

// chunkList quotes each tag so the padded "HDR " stays readable.
func chunkList(tags []formats.ChunkTag) string {
	quoted := make([]string, len(tags))
	for i, t := range tags {
		quoted[i] = strconv.Quote(t.String())
	}
	return strings.Join(quoted, " ")
}
