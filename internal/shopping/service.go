// Package shopping sits between the presentation shells and the store.
//
// Every mutation is followed by a full re-read of the table which is then
// partitioned into pending and done items; callers replace whatever they
// display with the returned Lists. There is no incremental update, so each
// mutation costs O(n) in the number of items. That is fine for a shopping
// list and is the known ceiling of this design.
package shopping

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"

	"github.com/idilsaglam/compras/internal/logger"
	"github.com/idilsaglam/compras/internal/model"
	"github.com/idilsaglam/compras/internal/store"
)

// SeedItems are inserted, all done, the first time an empty store is used.
var SeedItems = []string{
	"Huevos",
	"Cecinas",
	"Queso Mantecoso",
	"Pan",
	"Legumbres",
	"Carne",
	"Pollo",
}

// Lists is the partitioned view of the store.
type Lists struct {
	Pending []model.PurchaseItem
	Done    []model.PurchaseItem
}

// Len is the total number of items across both partitions.
func (l Lists) Len() int { return len(l.Pending) + len(l.Done) }

// All returns pending items followed by done items.
func (l Lists) All() []model.PurchaseItem {
	out := make([]model.PurchaseItem, 0, l.Len())
	out = append(out, l.Pending...)
	return append(out, l.Done...)
}

// Result is what a mutation hands back: the fresh Lists and whether the
// targeted item existed. ID is set by Add.
type Result struct {
	Lists Lists
	Found bool
	ID    int64
}

// Service is safe for concurrent use.
type Service struct {
	repo store.Repository
	log  *logger.Logger

	initGroup   singleflight.Group
	mu          sync.Mutex
	initialized bool
}

func NewService(repo store.Repository, log *logger.Logger) *Service {
	if log == nil {
		log = logger.Nop()
	}
	return &Service{repo: repo, log: log}
}

// Init seeds the store when it is empty. It runs at most once per Service:
// concurrent callers share one attempt, later calls return immediately, and
// a store that becomes empty through deletions is never reseeded. A failed
// attempt leaves the Service uninitialized so the next call retries.
func (s *Service) Init(ctx context.Context) error {
	if s.isInitialized() {
		return nil
	}
	_, err, _ := s.initGroup.Do("init", func() (any, error) {
		// the attempt is shared by every waiting caller
		ctx := context.WithoutCancel(ctx)
		if s.isInitialized() {
			return nil, nil
		}
		n, err := s.seed(ctx)
		if err != nil {
			return nil, err
		}
		s.mu.Lock()
		s.initialized = true
		s.mu.Unlock()
		if n > 0 {
			s.log.Info(s.log.WithField(ctx, "seeded", n), "store seeded")
		}
		return nil, nil
	})
	return err
}

func (s *Service) isInitialized() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.initialized
}

func (s *Service) seed(ctx context.Context) (int, error) {
	n, err := s.repo.Seed(ctx, SeedItems, true)
	if err != nil {
		return 0, fmt.Errorf("init: %w", err)
	}
	return n, nil
}

// Snapshot reads the whole table and partitions it.
func (s *Service) Snapshot(ctx context.Context) (Lists, error) {
	var lists Lists
	err := s.task(ctx, "snapshot", func(ctx context.Context) error {
		var err error
		lists, err = s.reload(ctx)
		return err
	})
	return lists, err
}

// Toggle flips the done flag of item.
func (s *Service) Toggle(ctx context.Context, item model.PurchaseItem) (Result, error) {
	return s.SetDone(ctx, item, !item.Done)
}

// SetDone stores item with the given done flag. An unknown id is a no-op
// reported through Result.Found.
func (s *Service) SetDone(ctx context.Context, item model.PurchaseItem, done bool) (Result, error) {
	item.Done = done
	return s.mutate(ctx, "set_done", func(ctx context.Context) (Result, error) {
		found, err := s.repo.Update(ctx, item)
		return Result{Found: found, ID: item.ID}, err
	})
}

// Rename replaces the description of item.
func (s *Service) Rename(ctx context.Context, item model.PurchaseItem, description string) (Result, error) {
	d, err := validateDescription(description)
	if err != nil {
		return Result{}, err
	}
	item.Description = d
	return s.mutate(ctx, "rename", func(ctx context.Context) (Result, error) {
		found, err := s.repo.Update(ctx, item)
		return Result{Found: found, ID: item.ID}, err
	})
}

// Remove deletes the item with id. An unknown id is a no-op reported through
// Result.Found.
func (s *Service) Remove(ctx context.Context, id int64) (Result, error) {
	return s.mutate(ctx, "remove", func(ctx context.Context) (Result, error) {
		found, err := s.repo.Delete(ctx, id)
		return Result{Found: found, ID: id}, err
	})
}

// Add inserts a pending item and returns its id in Result.ID.
func (s *Service) Add(ctx context.Context, description string) (Result, error) {
	d, err := validateDescription(description)
	if err != nil {
		return Result{}, err
	}
	return s.mutate(ctx, "add", func(ctx context.Context) (Result, error) {
		id, err := s.repo.Insert(ctx, d, false)
		return Result{Found: true, ID: id}, err
	})
}

// Find returns the item with id from a fresh read.
func (s *Service) Find(ctx context.Context, id int64) (model.PurchaseItem, bool, error) {
	lists, err := s.Snapshot(ctx)
	if err != nil {
		return model.PurchaseItem{}, false, err
	}
	for _, it := range lists.All() {
		if it.ID == id {
			return it, true, nil
		}
	}
	return model.PurchaseItem{}, false, nil
}

// mutate runs fn and then reloads. If fn fails nothing is reloaded; if the
// reload fails the Result still reports Found but carries empty Lists.
func (s *Service) mutate(ctx context.Context, op string, fn func(context.Context) (Result, error)) (Result, error) {
	var res Result
	err := s.task(ctx, op, func(ctx context.Context) error {
		r, err := fn(ctx)
		if err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
		res = r
		if !r.Found {
			s.log.Warn(s.log.WithField(ctx, "id", r.ID), "item not found")
		}
		lists, err := s.reload(ctx)
		if err != nil {
			return err
		}
		res.Lists = lists
		return nil
	})
	return res, err
}

func (s *Service) reload(ctx context.Context) (Lists, error) {
	items, err := s.repo.ListAll(ctx)
	if err != nil {
		return Lists{}, fmt.Errorf("reload: %w", err)
	}
	pending, done := model.Partition(items)
	return Lists{Pending: pending, Done: done}, nil
}

// task runs fn after Init with a task_id in the log context.
func (s *Service) task(ctx context.Context, op string, fn func(context.Context) error) error {
	ctx = s.log.WithField(ctx, "task_id", uuid.NewString())
	ctx = s.log.WithField(ctx, "op", op)
	start := time.Now()

	if err := s.Init(ctx); err != nil {
		s.log.Error(ctx, "init failed", err)
		return err
	}
	if err := fn(ctx); err != nil {
		s.log.Error(ctx, "task failed", err)
		return err
	}
	s.log.Event(ctx, zerolog.DebugLevel).Dur("took", time.Since(start)).Msg("task done")
	return nil
}
