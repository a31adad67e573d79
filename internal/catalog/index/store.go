package index

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/mmcdole/cinesearch/internal/domain"
	bolt "go.etcd.io/bbolt"
)

var bucketMovies = []byte("movies")

// movieStore keeps full movie records keyed by ID. The bleve index only
// holds searchable text; results are hydrated from here.
type movieStore struct {
	db *bolt.DB
}

func openMovieStore(path string) (*movieStore, error) {
	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open bolt db: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketMovies)
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create bucket: %w", err)
	}

	return &movieStore{db: db}, nil
}

func (s *movieStore) Close() error {
	return s.db.Close()
}

// put writes a batch of movies in one transaction
func (s *movieStore) put(movies []domain.MovieSummary) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketMovies)
		for _, m := range movies {
			data, err := json.Marshal(m)
			if err != nil {
				return fmt.Errorf("failed to encode movie %s: %w", m.ID, err)
			}
			if err := b.Put([]byte(m.ID), data); err != nil {
				return err
			}
		}
		return nil
	})
}

// get loads movies in the order of ids. Unknown IDs are skipped.
func (s *movieStore) get(ids []string) ([]domain.MovieSummary, error) {
	movies := make([]domain.MovieSummary, 0, len(ids))
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketMovies)
		for _, id := range ids {
			v := b.Get([]byte(id))
			if v == nil {
				continue
			}
			var m domain.MovieSummary
			if err := json.Unmarshal(v, &m); err != nil {
				return fmt.Errorf("failed to decode movie %s: %w", id, err)
			}
			movies = append(movies, m)
		}
		return nil
	})
	return movies, err
}

// count returns the number of stored movies
func (s *movieStore) count() int {
	var n int
	s.db.View(func(tx *bolt.Tx) error {
		n = tx.Bucket(bucketMovies).Stats().KeyN
		return nil
	})
	return n
}
