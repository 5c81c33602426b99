package export

import (
	"bufio"
	"encoding/gob"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"time"

	"voxel-terrain/internal/config"
	"voxel-terrain/internal/world"

	"github.com/google/uuid"
	"github.com/klauspost/compress/zstd"
)

// FormatVersion is bumped whenever ChunkRecord or RegionHeader change shape.
const FormatVersion = 1

// RegionHeader is written as a JSON line ahead of the gob body so tools can read
// it without decoding chunks.
type RegionHeader struct {
	Version   int                    `json:"version"`
	ID        uuid.UUID              `json:"id"`
	CreatedAt time.Time              `json:"created_at"`
	ChunkSize int                    `json:"chunk_size"`
	Chunks    int                    `json:"chunks"`
	Config    *config.WorldGenConfig `json:"config"`
}

// ChunkRecord is one generated buffer, flattened in buffer index order.
type ChunkRecord struct {
	X, Y, Z   int
	Lod       int
	Edge      int
	Kinds     []uint8
	Materials []uint8
}

// Region is a batch of generated chunks plus the configuration that produced them.
type Region struct {
	Header RegionHeader
	Chunks []ChunkRecord
}

// NewRegion captures bufs under a fresh region ID. Chunks are ordered by
// coordinate so identical input encodes identically apart from the header.
func NewRegion(cfg *config.WorldGenConfig, bufs []*world.VoxelBuffer) Region {
	records := make([]ChunkRecord, 0, len(bufs))
	for _, b := range bufs {
		records = append(records, recordOf(b))
	}
	sort.Slice(records, func(i, j int) bool {
		a, b := records[i], records[j]
		if a.X != b.X {
			return a.X < b.X
		}
		if a.Y != b.Y {
			return a.Y < b.Y
		}
		return a.Z < b.Z
	})
	return Region{
		Header: RegionHeader{
			Version:   FormatVersion,
			ID:        uuid.New(),
			CreatedAt: time.Now().UTC(),
			ChunkSize: world.ChunkSize,
			Chunks:    len(records),
			Config:    cfg,
		},
		Chunks: records,
	}
}

func recordOf(b *world.VoxelBuffer) ChunkRecord {
	voxels := b.Voxels()
	rec := ChunkRecord{
		X: b.Coord.X, Y: b.Coord.Y, Z: b.Coord.Z,
		Lod:       int(b.Lod),
		Edge:      b.Edge,
		Kinds:     make([]uint8, len(voxels)),
		Materials: make([]uint8, len(voxels)),
	}
	for i, v := range voxels {
		rec.Kinds[i] = uint8(v.Kind)
		rec.Materials[i] = uint8(v.Material)
	}
	return rec
}

// Coord returns the chunk coordinate of the record.
func (c ChunkRecord) Coord() world.ChunkCoord {
	return world.ChunkCoord{X: c.X, Y: c.Y, Z: c.Z}
}

// Buffer rebuilds the voxel buffer the record was taken from.
func (c ChunkRecord) Buffer() (*world.VoxelBuffer, error) {
	lod := world.LodLevel(c.Lod)
	if lod < 1 || world.ChunkSize%c.Lod != 0 {
		return nil, fmt.Errorf("chunk %v: invalid lod %d", c.Coord(), c.Lod)
	}
	if c.Edge != world.DataShape(lod) {
		return nil, fmt.Errorf("chunk %v: edge %d does not match lod %d", c.Coord(), c.Edge, c.Lod)
	}
	n := c.Edge * c.Edge * c.Edge
	if len(c.Kinds) != n || len(c.Materials) != n {
		return nil, fmt.Errorf("chunk %v: expected %d voxels, got %d kinds and %d materials", c.Coord(), n, len(c.Kinds), len(c.Materials))
	}
	buf := world.NewVoxelBuffer(c.Coord(), lod)
	idx := 0
	for i := 0; i < c.Edge; i++ {
		for j := 0; j < c.Edge; j++ {
			for k := 0; k < c.Edge; k++ {
				buf.Set(i, j, k, world.Voxel{Kind: world.VoxelKind(c.Kinds[idx]), Material: world.Material(c.Materials[idx])})
				idx++
			}
		}
	}
	return buf, nil
}

// Encode writes r as a zstd stream: header JSON line, then the gob-encoded region.
func Encode(w io.Writer, r Region) error {
	enc, err := zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return err
	}

	bw := bufio.NewWriterSize(enc, 256*1024)
	hb, err := json.Marshal(r.Header)
	if err != nil {
		enc.Close()
		return fmt.Errorf("header encode: %w", err)
	}
	if _, err := bw.Write(hb); err != nil {
		enc.Close()
		return err
	}
	if err := bw.WriteByte('\n'); err != nil {
		enc.Close()
		return err
	}
	if err := gob.NewEncoder(bw).Encode(&r); err != nil {
		enc.Close()
		return fmt.Errorf("gob encode: %w", err)
	}
	if err := bw.Flush(); err != nil {
		enc.Close()
		return err
	}
	return enc.Close()
}

// Decode reads a region written by Encode.
func Decode(rd io.Reader) (Region, error) {
	var r Region
	dec, err := zstd.NewReader(rd)
	if err != nil {
		return r, err
	}
	defer dec.Close()

	br := bufio.NewReaderSize(dec, 256*1024)
	line, err := br.ReadBytes('\n')
	if err != nil {
		return r, fmt.Errorf("read header: %w", err)
	}
	var hdr RegionHeader
	if err := json.Unmarshal(line, &hdr); err != nil {
		return r, fmt.Errorf("header decode: %w", err)
	}
	if hdr.Version != FormatVersion {
		return r, fmt.Errorf("unsupported region version %d", hdr.Version)
	}

	if err := gob.NewDecoder(br).Decode(&r); err != nil {
		return r, fmt.Errorf("gob decode: %w", err)
	}
	return r, nil
}

// ReadHeader returns only the header line of a region file.
func ReadHeader(path string) (RegionHeader, error) {
	var hdr RegionHeader
	f, err := os.Open(path)
	if err != nil {
		return hdr, err
	}
	defer f.Close()

	dec, err := zstd.NewReader(f)
	if err != nil {
		return hdr, err
	}
	defer dec.Close()

	line, err := bufio.NewReader(dec).ReadBytes('\n')
	if err != nil {
		return hdr, fmt.Errorf("read header: %w", err)
	}
	if err := json.Unmarshal(line, &hdr); err != nil {
		return hdr, fmt.Errorf("header decode: %w", err)
	}
	return hdr, nil
}

// WriteRegion encodes r to path, creating parent directories.
func WriteRegion(path string, r Region) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	if err := Encode(f, r); err != nil {
		f.Close()
		return fmt.Errorf("write region %s: %w", path, err)
	}
	return f.Close()
}

// ReadRegion decodes the region stored at path.
func ReadRegion(path string) (Region, error) {
	f, err := os.Open(path)
	if err != nil {
		return Region{}, err
	}
	defer f.Close()

	r, err := Decode(f)
	if err != nil {
		return r, fmt.Errorf("read region %s: %w", path, err)
	}
	return r, nil
}
