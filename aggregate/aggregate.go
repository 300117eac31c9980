// Package aggregate fans directory and search requests out across the
// registered catalog services and merges their results.
package aggregate

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"bookhound"

	"golang.org/x/sync/errgroup"
)

// Registry is an insert-once, ordered name-to-service map. It is
// assembled during startup and read-only afterwards; lookups never
// mutate it, so concurrent use after construction needs no locking.
type Registry struct {
	names    []string
	services map[string]bookhound.Service
}

func NewRegistry() *Registry {
	return &Registry{services: make(map[string]bookhound.Service)}
}

// Register adds svc under name. Registering the same name twice is an
// error.
func (r *Registry) Register(name string, svc bookhound.Service) error {
	if name == "" {
		return bookhound.Errorf(bookhound.EINVALID, "service name required")
	}
	if svc == nil {
		return bookhound.Errorf(bookhound.EINVALID, "service %q is nil", name)
	}
	if _, ok := r.services[name]; ok {
		return bookhound.Errorf(bookhound.EINVALID, "service %q already registered", name)
	}
	r.names = append(r.names, name)
	r.services[name] = svc
	return nil
}

// Lookup returns the service registered under name.
func (r *Registry) Lookup(name string) (bookhound.Service, bool) {
	svc, ok := r.services[name]
	return svc, ok
}

// Names returns the registered service names in registration order.
func (r *Registry) Names() []string {
	names := make([]string, len(r.names))
	copy(names, r.names)
	return names
}

// Aggregator is the engine's front door: one directory call and one
// search call spanning every registered service.
type Aggregator struct {
	registry *Registry
	logger   *slog.Logger
}

// Option configures an Aggregator.
type Option func(*Aggregator)

// WithLogger sets the logger. Defaults to slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(a *Aggregator) { a.logger = l }
}

func New(registry *Registry, opts ...Option) *Aggregator {
	a := &Aggregator{
		registry: registry,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// GetLibraries fetches every service's directory concurrently and
// returns the concatenation in registration order. Any service failure
// fails the whole call; a partial directory would silently hide
// libraries from users.
func (a *Aggregator) GetLibraries(ctx context.Context) ([]bookhound.Library, error) {
	names := a.registry.Names()
	results := make([][]bookhound.Library, len(names))

	g, ctx := errgroup.WithContext(ctx)
	for i, name := range names {
		i, name := i, name
		svc, _ := a.registry.Lookup(name)
		g.Go(func() error {
			libraries, err := svc.GetLibraries(ctx)
			if err != nil {
				return bookhound.Errorf(bookhound.ErrorCode(err), "%s: %s", name, bookhound.ErrorMessage(err))
			}
			results[i] = libraries
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var all []bookhound.Library
	for _, libraries := range results {
		all = append(all, libraries...)
	}
	return all, nil
}

// Search partitions libraryIDs by their service prefix and runs one
// producer goroutine per implicated service, interleaving entities on
// the returned channel in arrival order. The channel closes once every
// producer is done. A failing service degrades the result and is logged;
// it does not fail the search. Cancelling ctx stops all producers.
func (a *Aggregator) Search(ctx context.Context, keyword string, libraryIDs []string) <-chan bookhound.SearchEntity {
	partitions := make(map[string][]string)
	for _, id := range libraryIDs {
		name := bookhound.ServiceName(id)
		partitions[name] = append(partitions[name], id)
	}
	for name := range partitions {
		if _, ok := a.registry.Lookup(name); !ok {
			a.logger.Warn("no service for library ID prefix", "prefix", name)
		}
	}

	out := make(chan bookhound.SearchEntity)
	var wg sync.WaitGroup
	for _, name := range a.registry.Names() {
		name := name
		ids := partitions[name]
		if len(ids) == 0 {
			continue
		}
		svc, _ := a.registry.Lookup(name)

		wg.Add(1)
		go func() {
			defer wg.Done()
			err := svc.Search(ctx, keyword, ids, func(e bookhound.SearchEntity) error {
				select {
				case out <- e:
					return nil
				case <-ctx.Done():
					return ctx.Err()
				}
			})
			if err != nil && !errors.Is(err, context.Canceled) {
				a.logger.Warn("service search failed", "service", name, "err", err)
			}
		}()
	}

	go func() {
		wg.Wait()
		close(out)
	}()
	return out
}
