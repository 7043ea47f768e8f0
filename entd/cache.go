package entd

import (
	"encoding/gob"
	"io"
	"os"
	"reflect"

	"github.com/pkg/errors"
)

// cachedExtract is the gob payload of an extract cache file.
type cachedExtract struct {
	Fingerprint []FileInfo
	Extract     Extract
}

// WriteCache encodes an extract together with the fingerprint of the files
// it was read from.
//
// Example:
//
//	infos, _ := entd.Validate(dataPath)
//	extract, _ := entd.Load(ctx, dataPath, logger)
//	_ = entd.WriteCache(f, extract, infos)
func WriteCache(w io.Writer, extract *Extract, fingerprint []FileInfo) error {
	payload := cachedExtract{Fingerprint: fingerprint, Extract: *extract}
	if err := gob.NewEncoder(w).Encode(payload); err != nil {
		return errors.Wrap(err, "encode ENTD cache")
	}
	return nil
}

// ReadCache decodes an extract cache. The extract is returned only when the
// stored fingerprint equals the given one; a stale cache yields (nil, nil).
func ReadCache(r io.Reader, fingerprint []FileInfo) (*Extract, error) {
	var payload cachedExtract
	if err := gob.NewDecoder(r).Decode(&payload); err != nil {
		return nil, errors.Wrap(err, "decode ENTD cache")
	}
	if !reflect.DeepEqual(payload.Fingerprint, fingerprint) {
		return nil, nil
	}
	extract := payload.Extract
	for _, s := range Schemas {
		t := extract.Table(s.Name)
		if t == nil {
			return nil, errors.Errorf("ENTD cache lacks %s", s.Name)
		}
		t.reindex()
	}
	return &extract, nil
}

// LoadCached returns the cached extract at cachePath when it matches the
// current files, otherwise loads the files and refreshes the cache. An
// empty cachePath disables caching.
func LoadCached(load func() (*Extract, error), cachePath string, fingerprint []FileInfo) (*Extract, bool, error) {
	if cachePath == "" {
		extract, err := load()
		return extract, false, err
	}
	if f, err := os.Open(cachePath); err == nil {
		extract, decodeErr := ReadCache(f, fingerprint)
		f.Close()
		if decodeErr == nil && extract != nil {
			return extract, true, nil
		}
	}
	extract, err := load()
	if err != nil {
		return nil, false, err
	}
	f, err := os.Create(cachePath)
	if err != nil {
		return nil, false, errors.Wrapf(err, "create ENTD cache %s", cachePath)
	}
	defer f.Close()
	if err := WriteCache(f, extract, fingerprint); err != nil {
		return nil, false, err
	}
	return extract, false, nil
}
