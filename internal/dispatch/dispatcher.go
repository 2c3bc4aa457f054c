// Package dispatch routes typed request objects to their single registered
// handler. Validators run before the handler; if any violations are found
// the dispatch short-circuits with the full set of them.
package dispatch

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"stockroom/internal/apperrors"
)

var ErrNoHandler = errors.New("no handler registered for request kind")

// Request is any command or query the dispatcher can route. The kind string
// identifies the request type.
type Request interface {
	Kind() string
}

// HandlerFunc executes one request and returns its result.
type HandlerFunc func(ctx context.Context, req Request) (any, error)

// ValidateFunc inspects a request and returns all violations found, or nil.
type ValidateFunc func(req any) *apperrors.ValidationError

type registration struct {
	handler    HandlerFunc
	validators []ValidateFunc
}

// Dispatcher maps request kinds to handlers. Each kind has exactly one
// handler; fan-out is not supported.
type Dispatcher struct {
	registrations map[string]registration
	logger        *zap.Logger
}

// New creates an empty Dispatcher.
func New(logger *zap.Logger) *Dispatcher {
	return &Dispatcher{
		registrations: make(map[string]registration),
		logger:        logger,
	}
}

// Register binds a handler and its validators to a request kind. Registering
// the same kind twice is a wiring bug and panics at startup.
func (d *Dispatcher) Register(kind string, handler HandlerFunc, validators ...ValidateFunc) {
	if _, exists := d.registrations[kind]; exists {
		panic(fmt.Sprintf("dispatch: handler already registered for kind %q", kind))
	}
	d.registrations[kind] = registration{handler: handler, validators: validators}
}

// Dispatch routes req to its handler. All validators run first and their
// violations are merged, so a failing request reports every invalid field
// at once. Handler errors are propagated without reinterpretation.
func (d *Dispatcher) Dispatch(ctx context.Context, req Request) (any, error) {
	reg, ok := d.registrations[req.Kind()]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNoHandler, req.Kind())
	}

	violations := apperrors.NewValidationError()
	for _, validate := range reg.validators {
		violations.Merge(validate(req))
	}
	if !violations.Empty() {
		d.logger.Debug("Request failed validation",
			zap.String("kind", req.Kind()),
			zap.Int("fields", len(violations.Violations)),
		)
		return nil, violations
	}

	return reg.handler(ctx, req)
}

// HandlerOf adapts a typed handler function to the dispatcher's HandlerFunc.
// The request type mismatch branch only fires on a wiring bug.
func HandlerOf[R Request, T any](fn func(ctx context.Context, req R) (T, error)) HandlerFunc {
	return func(ctx context.Context, req Request) (any, error) {
		typed, ok := req.(R)
		if !ok {
			return nil, fmt.Errorf("dispatch: request kind %q bound to mismatched handler", req.Kind())
		}
		return fn(ctx, typed)
	}
}
