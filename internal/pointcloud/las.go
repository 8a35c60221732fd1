package pointcloud

import (
	"encoding/binary"
	"math"
	"os"

	"github.com/paulmach/orb"

	"github.com/envis-space/etiles/internal/errdefs"
)

// ReadLAS reads a LAS 1.2 point cloud (point data formats 0-3) from path.
// The public header block and point record layouts are the fixed binary
// structure the LAS 1.2 specification defines; no library in the retrieval
// pack parses it, so this is read directly with encoding/binary, grounded
// on the field offsets and per-format record parsing in
// xiaolingis-gocesiumtiler's lasread/tiler_las_reader.go (reimplemented
// here without that file's goroutine fan-out, since conversion happens
// once per file and the reprojection stage is where this pipeline's
// parallelism belongs).
func ReadLAS(path string) (PointCloud, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errdefs.EncodingFailed("reading las file", err)
	}
	if len(data) < 227 || string(data[0:4]) != "LASF" {
		return nil, errdefs.EncodingFailed("not a LAS file (missing LASF signature)", nil)
	}

	header := parseLASHeader(data)
	if header.pointRecordLength == 0 {
		return nil, errdefs.EncodingFailed("las header declares zero-length point records", nil)
	}

	out := &InMemory{}
	for i := uint32(0); i < header.numberPoints; i++ {
		offset := int(header.offsetToPoints) + int(i)*int(header.pointRecordLength)
		if offset+int(header.pointRecordLength) > len(data) {
			break
		}
		rec := data[offset : offset+int(header.pointRecordLength)]

		x := float64(int32(binary.LittleEndian.Uint32(rec[0:4])))*header.xScale + header.xOffset
		y := float64(int32(binary.LittleEndian.Uint32(rec[4:8])))*header.yScale + header.yOffset
		z := float64(int32(binary.LittleEndian.Uint32(rec[8:12])))*header.zScale + header.zOffset

		out.Points = append(out.Points, orb.Point{x, y})
		out.Heights = append(out.Heights, z)

		if color, ok := lasPointColor(rec, header.pointFormatID); ok {
			out.HasColors = true
			out.Colors = append(out.Colors, color)
		} else if out.HasColors {
			out.Colors = append(out.Colors, Color{})
		}
	}

	out.LocalCenter, out.CenterH = centroid(out.Points, out.Heights)
	return out, nil
}

type lasHeader struct {
	offsetToPoints    uint32
	pointFormatID     uint8
	pointRecordLength uint16
	numberPoints      uint32
	xScale, yScale, zScale float64
	xOffset, yOffset, zOffset float64
}

// parseLASHeader reads the fixed-offset fields of a LAS 1.2 public header
// block needed to locate and decode point records.
func parseLASHeader(data []byte) lasHeader {
	le := binary.LittleEndian
	return lasHeader{
		offsetToPoints:    le.Uint32(data[96:100]),
		pointFormatID:     data[104],
		pointRecordLength: le.Uint16(data[105:107]),
		numberPoints:      le.Uint32(data[107:111]),
		xScale:            math.Float64frombits(le.Uint64(data[131:139])),
		yScale:            math.Float64frombits(le.Uint64(data[139:147])),
		zScale:            math.Float64frombits(le.Uint64(data[147:155])),
		xOffset:           math.Float64frombits(le.Uint64(data[155:163])),
		yOffset:           math.Float64frombits(le.Uint64(data[163:171])),
		zOffset:           math.Float64frombits(le.Uint64(data[171:179])),
	}
}

// lasPointColor extracts the RGB triple for point formats carrying color
// (2 and 3); LAS stores each channel as a 16-bit sample, which this scales
// down to [0,1] linear the way the tiler reader scales to 8-bit (/256)
// before later widening for glTF's float color accessor.
func lasPointColor(rec []byte, format uint8) (Color, bool) {
	var colorOffset int
	switch format {
	case 2:
		colorOffset = 20
	case 3:
		colorOffset = 28
	default:
		return Color{}, false
	}
	if colorOffset+6 > len(rec) {
		return Color{}, false
	}
	le := binary.LittleEndian
	r := le.Uint16(rec[colorOffset : colorOffset+2])
	g := le.Uint16(rec[colorOffset+2 : colorOffset+4])
	b := le.Uint16(rec[colorOffset+4 : colorOffset+6])
	return Color{
		R: float32(r) / 65535,
		G: float32(g) / 65535,
		B: float32(b) / 65535,
	}, true
}
