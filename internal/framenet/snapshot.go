package framenet

import (
	"os"
	"path/filepath"

	"github.com/lexicoord/semcore/internal/engine"
	"github.com/vmihailenco/msgpack/v5"
	bolt "go.etcd.io/bbolt"
)

var (
	bucketFrames = []byte("frames")
	bucketLUs    = []byte("lexical_units")
)

// LoadSnapshot reads a previously-saved bbolt snapshot at path. Per §4.3 this
// is only consulted when the source path is the default production path; a
// custom/test DataPath always rebuilds from the XML database.
func LoadSnapshot(path string) (frames []FrameRecord, lus []LexicalUnit, err error) {
	db, oerr := bolt.Open(path, 0o600, nil)
	if oerr != nil {
		return nil, nil, engine.Cache("FramenetEngine", oerr)
	}
	defer db.Close()

	err = db.View(func(tx *bolt.Tx) error {
		if fb := tx.Bucket(bucketFrames); fb != nil {
			if cerr := fb.ForEach(func(_, v []byte) error {
				var fr FrameRecord
				if derr := msgpack.Unmarshal(v, &fr); derr != nil {
					return derr
				}
				frames = append(frames, fr)
				return nil
			}); cerr != nil {
				return cerr
			}
		}
		if lb := tx.Bucket(bucketLUs); lb != nil {
			if cerr := lb.ForEach(func(_, v []byte) error {
				var lu LexicalUnit
				if derr := msgpack.Unmarshal(v, &lu); derr != nil {
					return derr
				}
				lus = append(lus, lu)
				return nil
			}); cerr != nil {
				return cerr
			}
		}
		return nil
	})
	if err != nil {
		return nil, nil, engine.Cache("FramenetEngine", err)
	}
	return frames, lus, nil
}

// SaveSnapshot writes frames and lus to a bbolt file at path, via a
// write-temp-then-rename discipline so a crash mid-write never corrupts the
// previous snapshot.
func SaveSnapshot(path string, frames []FrameRecord, lus []LexicalUnit) error {
	tmp := path + ".tmp"
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return engine.Cache("FramenetEngine", err)
	}
	db, err := bolt.Open(tmp, 0o600, nil)
	if err != nil {
		return engine.Cache("FramenetEngine", err)
	}

	werr := db.Update(func(tx *bolt.Tx) error {
		fb, berr := tx.CreateBucketIfNotExists(bucketFrames)
		if berr != nil {
			return berr
		}
		for _, fr := range frames {
			v, merr := msgpack.Marshal(fr)
			if merr != nil {
				return merr
			}
			if perr := fb.Put([]byte(fr.ID), v); perr != nil {
				return perr
			}
		}
		lb, berr := tx.CreateBucketIfNotExists(bucketLUs)
		if berr != nil {
			return berr
		}
		for _, lu := range lus {
			v, merr := msgpack.Marshal(lu)
			if merr != nil {
				return merr
			}
			if perr := lb.Put([]byte(lu.ID), v); perr != nil {
				return perr
			}
		}
		return nil
	})
	db.Close()
	if werr != nil {
		os.Remove(tmp)
		return engine.Cache("FramenetEngine", werr)
	}
	if err := os.Rename(tmp, path); err != nil {
		return engine.Cache("FramenetEngine", err)
	}
	return nil
}
