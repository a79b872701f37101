package chain

import (
	"sort"

	dbm "github.com/tendermint/tm-db"
)

// txStore buffers the writes of one message on top of the database. Writes
// reach the database only through flush, so a failed message leaves no
// trace.
type txStore struct {
	db dbm.DB
	// deleted keys map to nil
	writes map[string][]byte
}

func newTxStore(db dbm.DB) *txStore {
	return &txStore{db: db, writes: make(map[string][]byte)}
}

func (s *txStore) get(key []byte) ([]byte, error) {
	if v, ok := s.writes[string(key)]; ok {
		return v, nil
	}
	return s.db.Get(key)
}

func (s *txStore) set(key, value []byte) {
	if value == nil {
		value = []byte{}
	}
	s.writes[string(key)] = value
}

func (s *txStore) delete(key []byte) {
	s.writes[string(key)] = nil
}

// flush writes the buffered entries in key order in one batch.
func (s *txStore) flush() error {
	if len(s.writes) == 0 {
		return nil
	}
	keys := make([]string, 0, len(s.writes))
	for k := range s.writes {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	batch := s.db.NewBatch()
	defer batch.Close()
	for _, k := range keys {
		var err error
		if v := s.writes[k]; v == nil {
			err = batch.Delete([]byte(k))
		} else {
			err = batch.Set([]byte(k), v)
		}
		if err != nil {
			return err
		}
	}
	if err := batch.WriteSync(); err != nil {
		return err
	}
	s.writes = make(map[string][]byte)
	return nil
}
