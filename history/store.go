// Package history keeps past solver runs in a local bolt database so they can
// be listed and shown again without recomputation.
package history

import (
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/timshannon/bolthold"
	"github.com/vmihailenco/msgpack/v5"
	"go.etcd.io/bbolt"

	"github.com/katalvlaran/christofides/graph"
	"github.com/katalvlaran/christofides/planner"
	"github.com/katalvlaran/christofides/tsp"
)

// ErrNotFound is returned when no run has the requested ID.
var ErrNotFound = errors.New("history: run not found")

// Kind tells how a run was produced.
type Kind string

const (
	// KindSolve is a run over a raw cost matrix.
	KindSolve Kind = "solve"
	// KindPlan is a run over geographic places.
	KindPlan Kind = "plan"
)

// Run is one stored solver invocation.
type Run struct {
	ID        string             `json:"id" yaml:"id" msgpack:"id" boltholdKey:"ID"`
	Kind      Kind               `json:"kind" yaml:"kind" msgpack:"kind" boltholdIndex:"Kind"`
	Source    string             `json:"source,omitempty" yaml:"source,omitempty" msgpack:"source,omitempty"`
	Matching  string             `json:"matching" yaml:"matching" msgpack:"matching"`
	Vertices  []graph.Vertex     `json:"vertices" yaml:"vertices" msgpack:"vertices"`
	Result    *tsp.Result        `json:"result" yaml:"result" msgpack:"result"`
	Itinerary *planner.Itinerary `json:"itinerary,omitempty" yaml:"itinerary,omitempty" msgpack:"itinerary,omitempty"`
	CreatedAt int64              `json:"created_at" yaml:"created_at" msgpack:"created_at" boltholdIndex:"CreatedAt"`
}

// Created returns CreatedAt as a time.
func (r *Run) Created() time.Time {
	return time.Unix(0, r.CreatedAt)
}

// Store is a bolthold-backed run history.
type Store struct {
	db  *bolthold.Store
	log logrus.FieldLogger
	now func() time.Time
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the store logger. Nil is ignored.
func WithLogger(l logrus.FieldLogger) Option {
	return func(s *Store) {
		if l != nil {
			s.log = l
		}
	}
}

// WithClock overrides the time source used to stamp new runs.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

// Open opens (or creates) the database file at path, creating its
// directory when missing.
func Open(path string, opts ...Option) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, errors.Wrapf(err, "history: create %s", filepath.Dir(path))
	}
	db, err := bolthold.Open(path, 0o644, &bolthold.Options{
		Encoder: msgpack.Marshal,
		Decoder: msgpack.Unmarshal,
		Options: &bbolt.Options{
			Timeout:      5 * time.Second,
			NoGrowSync:   bbolt.DefaultOptions.NoGrowSync,
			FreelistType: bbolt.DefaultOptions.FreelistType,
		},
	})
	if err != nil {
		return nil, errors.Wrapf(err, "history: open %s", path)
	}

	quiet := logrus.New()
	quiet.SetOutput(io.Discard)

	s := &Store{db: db, log: quiet, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}

	return s, nil
}

// Close releases the database file.
func (s *Store) Close() error {
	return s.db.Close()
}

// Save stores run, assigning ID and CreatedAt when they are empty.
func (s *Store) Save(run *Run) error {
	if run.ID == "" {
		run.ID = uuid.NewString()
	}
	if run.CreatedAt == 0 {
		run.CreatedAt = s.now().UnixNano()
	}
	if err := s.db.Upsert(run.ID, run); err != nil {
		return errors.Wrapf(err, "history: save %s", run.ID)
	}
	s.log.WithFields(logrus.Fields{"id": run.ID, "kind": run.Kind}).Debug("run saved")

	return nil
}

// Get loads the run with the given ID.
func (s *Store) Get(id string) (*Run, error) {
	var run Run
	if err := s.db.Get(id, &run); err != nil {
		if errors.Is(err, bolthold.ErrNotFound) {
			return nil, errors.Wrapf(ErrNotFound, "id %s", id)
		}
		return nil, errors.Wrapf(err, "history: get %s", id)
	}

	return &run, nil
}

// List returns stored runs, newest first. limit <= 0 means all.
func (s *Store) List(limit int) ([]Run, error) {
	q := (&bolthold.Query{}).SortBy("CreatedAt").Reverse()
	if limit > 0 {
		q = q.Limit(limit)
	}

	var runs []Run
	if err := s.db.Find(&runs, q); err != nil {
		return nil, errors.Wrap(err, "history: list")
	}

	return runs, nil
}

// Delete removes the run with the given ID.
func (s *Store) Delete(id string) error {
	if err := s.db.Delete(id, &Run{}); err != nil {
		if errors.Is(err, bolthold.ErrNotFound) {
			return errors.Wrapf(ErrNotFound, "id %s", id)
		}
		return errors.Wrapf(err, "history: delete %s", id)
	}

	return nil
}

// Prune deletes everything except the newest keep runs and reports how many
// were removed.
func (s *Store) Prune(keep int) (int, error) {
	if keep < 0 {
		keep = 0
	}

	var old []Run
	q := (&bolthold.Query{}).SortBy("CreatedAt").Reverse().Skip(keep)
	if err := s.db.Find(&old, q); err != nil {
		return 0, errors.Wrap(err, "history: prune")
	}
	for i := range old {
		if err := s.Delete(old[i].ID); err != nil {
			return i, err
		}
	}

	return len(old), nil
}
