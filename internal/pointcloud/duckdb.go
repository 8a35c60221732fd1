package pointcloud

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/paulmach/orb"

	_ "github.com/marcboeker/go-duckdb"

	"github.com/envis-space/etiles/internal/errdefs"
)

// ReadDuckDB opens path (a .parquet or .csv file) through an in-process
// DuckDB connection and reads an x,y,z[,r,g,b] point table, the way the
// teacher's internal/db.Get opens a singleton connection and loads the
// spatial/parquet extensions before querying. Unlike the teacher's
// long-lived singleton, each call here opens and closes its own
// connection: a one-shot CLI conversion has no reason to keep DuckDB
// resident.
func ReadDuckDB(path string) (PointCloud, error) {
	db, err := sql.Open("duckdb", "")
	if err != nil {
		return nil, errdefs.EncodingFailed("opening duckdb connection", err)
	}
	defer db.Close()

	for _, ext := range []string{"parquet"} {
		if _, err := db.Exec(fmt.Sprintf("INSTALL %s; LOAD %s;", ext, ext)); err != nil {
			return nil, errdefs.EncodingFailed(fmt.Sprintf("loading duckdb extension %q", ext), err)
		}
	}

	scan := scanExpression(path)
	columns, err := tableColumns(db, scan)
	if err != nil {
		return nil, err
	}
	hasColor := columns["r"] && columns["g"] && columns["b"]
	hasHeight := columns["z"]

	selectCols := "x, y"
	if hasHeight {
		selectCols += ", z"
	} else {
		selectCols += ", 0.0 AS z"
	}
	if hasColor {
		selectCols += ", r, g, b"
	}

	rows, err := db.Query(fmt.Sprintf("SELECT %s FROM %s", selectCols, scan))
	if err != nil {
		return nil, errdefs.EncodingFailed("querying point table", err)
	}
	defer rows.Close()

	out := &InMemory{HasColors: hasColor}
	for rows.Next() {
		var x, y, z float64
		var r, g, b float64
		var scanErr error
		if hasColor {
			scanErr = rows.Scan(&x, &y, &z, &r, &g, &b)
		} else {
			scanErr = rows.Scan(&x, &y, &z)
		}
		if scanErr != nil {
			return nil, errdefs.EncodingFailed("scanning point row", scanErr)
		}
		out.Points = append(out.Points, orb.Point{x, y})
		out.Heights = append(out.Heights, z)
		if hasColor {
			out.Colors = append(out.Colors, Color{R: float32(r), G: float32(g), B: float32(b)})
		}
	}
	if err := rows.Err(); err != nil {
		return nil, errdefs.EncodingFailed("iterating point rows", err)
	}

	out.LocalCenter, out.CenterH = centroid(out.Points, out.Heights)
	return out, nil
}

func scanExpression(path string) string {
	if strings.HasSuffix(strings.ToLower(path), ".csv") {
		return fmt.Sprintf("read_csv_auto(%s)", quoteLiteral(path))
	}
	return fmt.Sprintf("read_parquet(%s)", quoteLiteral(path))
}

func quoteLiteral(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

func tableColumns(db *sql.DB, scan string) (map[string]bool, error) {
	rows, err := db.Query(fmt.Sprintf("SELECT * FROM %s LIMIT 0", scan))
	if err != nil {
		return nil, errdefs.EncodingFailed("inspecting point table schema", err)
	}
	defer rows.Close()
	names, err := rows.Columns()
	if err != nil {
		return nil, errdefs.EncodingFailed("reading point table columns", err)
	}
	cols := make(map[string]bool, len(names))
	for _, n := range names {
		cols[strings.ToLower(n)] = true
	}
	if !cols["x"] || !cols["y"] {
		return nil, errdefs.EncodingFailed("point table missing required x,y columns", nil)
	}
	return cols, nil
}
