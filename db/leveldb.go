package db

import (
	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/iterator"
	"github.com/syndtr/goleveldb/leveldb/util"
)

// LevelDB wraps the actual LevelDB connection backing the durable reward
// ledger.
type LevelDB struct {
	conn *leveldb.DB
}

// NewLevelDB opens (or creates) a LevelDB instance at the given path
func NewLevelDB(path string) (*LevelDB, error) {
	conn, err := leveldb.OpenFile(path, nil)
	if err != nil {
		return nil, err
	}
	return &LevelDB{conn: conn}, nil
}

// Close safely closes the LevelDB connection
func (l *LevelDB) Close() error {
	return l.conn.Close()
}

// Put inserts or updates a key-value pair
func (l *LevelDB) Put(key, value []byte) error {
	return l.conn.Put(key, value, nil)
}

// Get retrieves the value for a given key
func (l *LevelDB) Get(key []byte) ([]byte, error) {
	return l.conn.Get(key, nil)
}

// Delete removes a key-value pair
func (l *LevelDB) Delete(key []byte) error {
	return l.conn.Delete(key, nil)
}

// NewIterator returns an iterator over all keys under the given prefix, in
// key order
func (l *LevelDB) NewIterator(prefix []byte) iterator.Iterator {
	return l.conn.NewIterator(util.BytesPrefix(prefix), nil)
}
