package entd

import (
	"context"
	"encoding/csv"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/text/encoding/charmap"
)

// Separator is the ENTD field separator.
const Separator = ';'

// Extract is the raw ENTD extract, one table per source file.
type Extract struct {
	Individu    *Table
	TCMIndividu *Table
	Menage      *Table
	TCMMenage   *Table
	Deploc      *Table
	Voyage      *Table
	VoyageDet   *Table
}

// Table returns the table loaded from the named file.
func (e *Extract) Table(name string) *Table {
	switch name {
	case FileIndividu:
		return e.Individu
	case FileTCMIndividu:
		return e.TCMIndividu
	case FileMenage:
		return e.Menage
	case FileTCMMenage:
		return e.TCMMenage
	case FileDeploc:
		return e.Deploc
	case FileVoyage:
		return e.Voyage
	case FileVoyageDet:
		return e.VoyageDet
	}
	return nil
}

func (e *Extract) set(name string, t *Table) {
	switch name {
	case FileIndividu:
		e.Individu = t
	case FileTCMIndividu:
		e.TCMIndividu = t
	case FileMenage:
		e.Menage = t
	case FileTCMMenage:
		e.TCMMenage = t
	case FileDeploc:
		e.Deploc = t
	case FileVoyage:
		e.Voyage = t
	case FileVoyageDet:
		e.VoyageDet = t
	}
}

// FileInfo is the size of one validated source file.
type FileInfo struct {
	Name string `json:"name"`
	Size int64  `json:"size"`
}

// Dir returns the extract directory for a data path.
func Dir(dataPath string) string {
	return filepath.Join(dataPath, SurveyDir)
}

// Validate checks that every source file exists and is not empty, stopping
// at the first failure. The returned sizes fingerprint the extract.
func Validate(dataPath string) ([]FileInfo, error) {
	infos := make([]FileInfo, 0, len(Schemas))
	for _, s := range Schemas {
		path := filepath.Join(Dir(dataPath), s.Name)
		st, err := os.Stat(path)
		if err != nil || st.IsDir() {
			return nil, &MissingFileError{Name: s.Name, Path: path}
		}
		if st.Size() == 0 {
			return nil, &MissingFileError{Name: s.Name, Path: path, Empty: true}
		}
		infos = append(infos, FileInfo{Name: s.Name, Size: st.Size()})
	}
	return infos, nil
}

// Load validates the extract then decodes all source files concurrently.
func Load(ctx context.Context, dataPath string, logger *zap.Logger) (*Extract, error) {
	if _, err := Validate(dataPath); err != nil {
		return nil, err
	}
	extract := &Extract{}
	var mu sync.Mutex
	g, ctx := errgroup.WithContext(ctx)
	for _, s := range Schemas {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			t, err := ReadFile(filepath.Join(Dir(dataPath), s.Name), s)
			if err != nil {
				return err
			}
			logger.Debug("loaded ENTD table", zap.String("file", s.Name), zap.Int("rows", t.Len()))
			mu.Lock()
			extract.set(s.Name, t)
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return extract, nil
}

// ReadFile opens a Latin-1 source file and reads it with ReadTable.
func ReadFile(path string, schema FileSchema) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &MissingFileError{Name: schema.Name, Path: path}
	}
	defer f.Close()
	return ReadTable(charmap.ISO8859_1.NewDecoder().Reader(f), schema)
}

// ReadTable reads a ';'-separated UTF-8 stream, keeping only the schema
// columns in schema order.
func ReadTable(r io.Reader, schema FileSchema) (*Table, error) {
	return ReadDelimited(r, schema, Separator)
}

// ReadDelimited is ReadTable with an explicit separator.
func ReadDelimited(r io.Reader, schema FileSchema, sep rune) (*Table, error) {
	cr := csv.NewReader(r)
	cr.Comma = sep
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	cr.ReuseRecord = true

	head, err := cr.Read()
	if err == io.EOF {
		return nil, &MissingFileError{Name: schema.Name, Empty: true}
	}
	if err != nil {
		return nil, errors.Wrapf(err, "read header of %s", schema.Name)
	}
	idx := func(col string) int {
		for i, h := range head {
			if strings.TrimSpace(h) == col {
				return i
			}
		}
		return -1
	}
	positions := make([]int, len(schema.Columns))
	for i, col := range schema.Columns {
		positions[i] = idx(col)
		if positions[i] < 0 {
			return nil, &MissingColumnError{File: schema.Name, Column: col}
		}
	}

	t := NewTable(schema.Name, schema.Columns)
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrapf(err, "read %s", schema.Name)
		}
		row := make([]string, len(positions))
		for i, p := range positions {
			if p < len(rec) {
				row[i] = strings.TrimSpace(rec[p])
			}
		}
		t.Rows = append(t.Rows, row)
	}
	return t, nil
}
