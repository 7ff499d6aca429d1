// Package resource implements the CRUD pipeline shared by every entity:
// visibility scope, policy check, entity hooks, then the store.
package resource

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"communityaid/internal/domain"
	"communityaid/internal/policy"
	"communityaid/internal/visibility"
)

// Store persists one entity kind. List and Get only return rows admitted by
// scope; Get returns domain.ErrNotFound otherwise.
type Store[T domain.Record] interface {
	List(ctx context.Context, scope domain.Scope, filter domain.Filter) ([]T, error)
	Get(ctx context.Context, id int64, scope domain.Scope) (*T, error)
	Create(ctx context.Context, item *T) error
	Update(ctx context.Context, item *T) error
	Delete(ctx context.Context, id int64) error
}

// Hooks customise the pipeline per entity. Nil hooks are skipped; nil Scope
// and Authorize fall back to the visibility and policy packages.
type Hooks[T domain.Record] struct {
	// PreCreate forces server-owned fields before authorization runs.
	PreCreate func(actor domain.Actor, item *T)
	// Validate runs after authorization and before any write.
	Validate  func(ctx context.Context, item *T) error
	Scope     func(actor domain.Actor) domain.Scope
	Authorize func(actor domain.Actor, op policy.Op, target domain.Record) policy.Decision
}

// Service runs CRUD operations for one entity kind.
type Service[T domain.Record] struct {
	kind   policy.Kind
	store  Store[T]
	hooks  Hooks[T]
	logger zerolog.Logger
}

// NewService wires a store with its hooks.
func NewService[T domain.Record](kind policy.Kind, store Store[T], hooks Hooks[T], logger zerolog.Logger) *Service[T] {
	if hooks.Scope == nil {
		hooks.Scope = func(actor domain.Actor) domain.Scope {
			return visibility.Scope(kind, actor)
		}
	}
	if hooks.Authorize == nil {
		hooks.Authorize = func(actor domain.Actor, op policy.Op, target domain.Record) policy.Decision {
			return policy.Decide(actor, kind, op, target)
		}
	}
	return &Service[T]{
		kind:   kind,
		store:  store,
		hooks:  hooks,
		logger: logger.With().Str("resource", string(kind)).Logger(),
	}
}

// Kind returns the entity kind served.
func (s *Service[T]) Kind() policy.Kind { return s.kind }

// List returns the rows visible to actor in insertion order.
func (s *Service[T]) List(ctx context.Context, actor domain.Actor, filter domain.Filter) ([]T, error) {
	if err := s.hooks.Authorize(actor, policy.OpList, nil).Err(); err != nil {
		return nil, err
	}
	items, err := s.store.List(ctx, s.hooks.Scope(actor), filter)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", s.kind, err)
	}
	return items, nil
}

// Retrieve fetches one row inside actor's scope. Rows outside it are
// reported as domain.ErrNotFound.
func (s *Service[T]) Retrieve(ctx context.Context, actor domain.Actor, id int64) (*T, error) {
	item, err := s.visible(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if err := s.hooks.Authorize(actor, policy.OpRetrieve, *item).Err(); err != nil {
		return nil, err
	}
	return item, nil
}

// Create applies patch to a fresh value, forces server-owned fields,
// authorizes and validates the candidate, then persists it.
func (s *Service[T]) Create(ctx context.Context, actor domain.Actor, patch Patch[T]) (*T, error) {
	if !actor.Authenticated() {
		return nil, domain.ErrUnauthorized
	}
	item := new(T)
	if patch != nil {
		if err := patch.Apply(item); err != nil {
			return nil, err
		}
	}
	if s.hooks.PreCreate != nil {
		s.hooks.PreCreate(actor, item)
	}
	if err := s.hooks.Authorize(actor, policy.OpCreate, *item).Err(); err != nil {
		return nil, err
	}
	if s.hooks.Validate != nil {
		if err := s.hooks.Validate(ctx, item); err != nil {
			return nil, err
		}
	}
	if err := s.store.Create(ctx, item); err != nil {
		return nil, fmt.Errorf("create %s: %w", s.kind, err)
	}
	s.logger.Info().Int64("id", (*item).Key()).Int64("actor", actor.ID).Msg("created")
	return item, nil
}

// Update authorizes against the stored row, applies patch and persists the
// result.
func (s *Service[T]) Update(ctx context.Context, actor domain.Actor, id int64, patch Patch[T]) (*T, error) {
	item, err := s.visible(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if err := s.hooks.Authorize(actor, policy.OpUpdate, *item).Err(); err != nil {
		return nil, err
	}
	if patch != nil {
		if err := patch.Apply(item); err != nil {
			return nil, err
		}
	}
	if s.hooks.Validate != nil {
		if err := s.hooks.Validate(ctx, item); err != nil {
			return nil, err
		}
	}
	if err := s.store.Update(ctx, item); err != nil {
		return nil, fmt.Errorf("update %s %d: %w", s.kind, id, err)
	}
	s.logger.Info().Int64("id", id).Int64("actor", actor.ID).Msg("updated")
	return item, nil
}

// Delete authorizes against the stored row and removes it. Dependent rows are
// removed by the store's cascade.
func (s *Service[T]) Delete(ctx context.Context, actor domain.Actor, id int64) error {
	item, err := s.visible(ctx, actor, id)
	if err != nil {
		return err
	}
	if err := s.hooks.Authorize(actor, policy.OpDelete, *item).Err(); err != nil {
		return err
	}
	if err := s.store.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete %s %d: %w", s.kind, id, err)
	}
	s.logger.Info().Int64("id", id).Int64("actor", actor.ID).Msg("deleted")
	return nil
}

func (s *Service[T]) visible(ctx context.Context, actor domain.Actor, id int64) (*T, error) {
	if !actor.Authenticated() {
		return nil, domain.ErrUnauthorized
	}
	item, err := s.store.Get(ctx, id, s.hooks.Scope(actor))
	if err != nil {
		return nil, err
	}
	return item, nil
}
