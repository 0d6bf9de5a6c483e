package services

import (
	"fmt"

	bolt "go.etcd.io/bbolt"
)

// BoltDB caches OCR extraction results in a BoltDB file, keyed by the SHA-256
// digest of the attachment bytes. Re-uploading an image the engine has already
// seen skips the recognition pass entirely.
type BoltDB struct {
	db *bolt.DB
}

var extractionsBucket = []byte("extractions")

// NewBoltDB creates a new BoltDB instance with the specified file path. It
// initializes the database with the required bucket and returns an error if
// the database cannot be opened or initialized. The database file is created
// with 0600 permissions if it doesn't exist.
func NewBoltDB(path string) (*BoltDB, error) {
	db, err := bolt.Open(path, 0600, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to open bolt db: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(extractionsBucket)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create bucket: %w", err)
	}

	return &BoltDB{db: db}, nil
}

// Extraction retrieves a cached extraction result for the given digest. The
// second return value reports whether an entry was found; a cached empty
// string is a valid hit.
func (b *BoltDB) Extraction(digest []byte) (string, bool, error) {
	var text string
	var found bool
	err := b.db.View(func(tx *bolt.Tx) error {
		bk := tx.Bucket(extractionsBucket)
		if bk == nil {
			return nil
		}

		v := bk.Get(digest)
		if v == nil {
			return nil
		}
		text = string(v)
		found = true
		return nil
	})
	return text, found, err
}

// PutExtraction stores an extraction result under the given digest,
// overwriting any previous entry.
func (b *BoltDB) PutExtraction(digest []byte, text string) error {
	return b.db.Update(func(tx *bolt.Tx) error {
		bk := tx.Bucket(extractionsBucket)
		if bk == nil {
			return fmt.Errorf("bucket %s is missing", extractionsBucket)
		}
		return bk.Put(digest, []byte(text))
	})
}

// Close releases the underlying database file.
func (b *BoltDB) Close() error {
	return b.db.Close()
}
