package report

import (
	"archive/zip"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/paulmach/orb/geojson"
	. "github.com/ttpr0/go-catchment/util"
	"golang.org/x/exp/slog"
)

const (
	EDGES_FILE       = "tiered_edges.geojson"
	FACILITIES_FILE  = "facilities.geojson"
	ORIGINS_FILE     = "origins.geojson"
	ASSIGNMENTS_FILE = "assignments.json"
	SUMMARY_FILE     = "summary.json"
	MAP_FILE         = "map.html"
	NODES_FILE       = "node_catchment.geojson"
	ARCHIVE_FILE     = "catchment.zip"
)

// Writes all artefacts of a run into dir and returns their paths. The html
// map and the archive are only written if enabled in the run options, the
// node catchment only if computed.
func Write(dir string, run *Run) (List[string], error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}
	files := NewList[string](7)

	collections := []Tuple[string, *geojson.FeatureCollection]{
		MakeTuple(EDGES_FILE, TieredEdges(run)),
		MakeTuple(FACILITIES_FILE, FacilityFeatures(run)),
		MakeTuple(ORIGINS_FILE, OriginFeatures(run)),
	}
	if run.NodeCatchments != nil {
		collections = append(collections, MakeTuple(NODES_FILE, NodeCatchmentFeatures(run)))
	}
	for _, item := range collections {
		file := filepath.Join(dir, item.A)
		if err := _WriteFeatureCollection(item.B, file); err != nil {
			return nil, err
		}
		files.Add(file)
	}

	file := filepath.Join(dir, ASSIGNMENTS_FILE)
	if err := WriteJSONToFile(run.Assignments, file); err != nil {
		return nil, err
	}
	files.Add(file)
	file = filepath.Join(dir, SUMMARY_FILE)
	if err := WriteJSONToFile(BuildSummary(run), file); err != nil {
		return nil, err
	}
	files.Add(file)

	if run.Options.HTML {
		file = filepath.Join(dir, MAP_FILE)
		if err := _WriteHTMLFile(run, file); err != nil {
			return nil, err
		}
		files.Add(file)
	}
	if run.Options.Archive {
		file, err := Archive(dir, files)
		if err != nil {
			return nil, err
		}
		files.Add(file)
	}
	slog.Info(fmt.Sprintf("wrote %v files to %v", files.Length(), dir))
	return files, nil
}

// Packs files into dir/catchment.zip, flattened to their base names.
func Archive(dir string, files List[string]) (string, error) {
	archive := filepath.Join(dir, ARCHIVE_FILE)
	out, err := os.Create(archive)
	if err != nil {
		return "", err
	}
	defer out.Close()

	writer := zip.NewWriter(out)
	for _, file := range files {
		if err := _AddToArchive(writer, file); err != nil {
			writer.Close()
			return "", err
		}
	}
	if err := writer.Close(); err != nil {
		return "", err
	}
	return archive, nil
}

func _AddToArchive(writer *zip.Writer, file string) error {
	in, err := os.Open(file)
	if err != nil {
		return err
	}
	defer in.Close()
	w, err := writer.Create(filepath.Base(file))
	if err != nil {
		return err
	}
	_, err = io.Copy(w, in)
	return err
}

func _WriteFeatureCollection(fc *geojson.FeatureCollection, file string) error {
	data, err := fc.MarshalJSON()
	if err != nil {
		return err
	}
	return os.WriteFile(file, data, 0644)
}

func _WriteHTMLFile(run *Run, file string) error {
	out, err := os.Create(file)
	if err != nil {
		return err
	}
	defer out.Close()
	return WriteHTMLMap(out, run)
}
