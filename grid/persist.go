package grid

import (
	"encoding/gob"
	"encoding/json"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/hscells/svmgrid"
	"github.com/pkg/errors"
)

// Meta describes a grid run.
type Meta struct {
	RunID    string
	Dataset  string
	Kernel   string
	Scale    svmgrid.Scale
	C        svmgrid.Range
	W        svmgrid.Range
	Started  time.Time
	Finished time.Time
}

// NewMeta describes a run of the configuration on a dataset that starts now.
func NewMeta(dataset string, config svmgrid.Config) Meta {
	return Meta{
		RunID:   uuid.New().String(),
		Dataset: dataset,
		Kernel:  config.Kernel,
		Scale:   config.Scale,
		C:       config.C,
		W:       config.W,
		Started: time.Now(),
	}
}

// Artifact is the JSON summary of a run.
type Artifact struct {
	Meta    Meta
	Records []Result
}

func writeGob(path string, v interface{}) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := gob.NewEncoder(f).Encode(v); err != nil {
		f.Close()
		return errors.Wrapf(err, "encoding %s", path)
	}
	return f.Close()
}

func readGob(path string, v interface{}) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return errors.Wrapf(gob.NewDecoder(f).Decode(v), "decoding %s", path)
}

// Save writes the results of a run next to each other:
//
//	prefix.dict   rates keyed by hyper-parameters (gob)
//	prefix.array  rates laid out as the grid (gob)
//	prefix.json   run metadata and every record
func Save(prefix string, results *Results, meta Meta) error {
	if err := writeGob(prefix+".dict", results.Rates()); err != nil {
		return err
	}
	if err := writeGob(prefix+".array", results.Grid(meta.C.Len(), meta.W.Len())); err != nil {
		return err
	}

	b, err := json.MarshalIndent(Artifact{Meta: meta, Records: results.Records()}, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(prefix+".json", b, 0644)
}

// LoadRates reads a .dict file.
func LoadRates(path string) (map[Key]float64, error) {
	var rates map[Key]float64
	if err := readGob(path, &rates); err != nil {
		return nil, err
	}
	return rates, nil
}

// LoadArray reads an .array file.
func LoadArray(path string) ([][]float64, error) {
	var array [][]float64
	if err := readGob(path, &array); err != nil {
		return nil, err
	}
	return array, nil
}

// LoadArtifact reads a .json file.
func LoadArtifact(path string) (Artifact, error) {
	var a Artifact
	b, err := os.ReadFile(path)
	if err != nil {
		return a, err
	}
	return a, errors.Wrapf(json.Unmarshal(b, &a), "decoding %s", path)
}
