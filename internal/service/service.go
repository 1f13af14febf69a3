// Package service holds the per-resource operations on top of the document store.
package service

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
	log "github.com/sirupsen/logrus"
	"github.com/ukydev/fleet-manager/internal/auth"
	"github.com/ukydev/fleet-manager/internal/db"
	"github.com/ukydev/fleet-manager/internal/events"
	"github.com/ukydev/fleet-manager/internal/storage"
)

var (
	ErrNotFound     = errors.New("not found")
	ErrInvalidState = errors.New("invalid state")
)

// Result caps. Every listing passes one explicitly.
const (
	broadListLimit int64 = 200
	listLimit      int64 = 500
)

// ValidationError reports input that does not match its schema.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	fields := make([]string, 0, len(e.Fields))
	for field := range e.Fields {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	parts := make([]string, 0, len(fields))
	for _, field := range fields {
		parts = append(parts, field+": "+e.Fields[field])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func invalidField(field, problem string) *ValidationError {
	return &ValidationError{Fields: map[string]string{field: problem}}
}

// Service implements every resource operation. It holds no per-request state.
type Service struct {
	store       db.DocumentStore
	collections db.Collections
	auth        *auth.Service
	validate    *validator.Validate
	events      events.Publisher
	mirror      storage.Mirror
}

// Option customises a Service.
type Option func(*Service)

// WithPublisher sets where domain events are sent. The default drops them.
func WithPublisher(p events.Publisher) Option {
	return func(s *Service) { s.events = p }
}

// WithMirror enables copying uploaded documents to external storage.
func WithMirror(m storage.Mirror) Option {
	return func(s *Service) { s.mirror = m }
}

// New creates a Service over store using the given collection mapping.
func New(store db.DocumentStore, collections db.Collections, authService *auth.Service, opts ...Option) *Service {
	s := &Service{
		store:       store,
		collections: collections,
		auth:        authService,
		validate:    newValidator(),
		events:      events.NopPublisher{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Report fields under their JSON names.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})
	return v
}

func (s *Service) validateStruct(v interface{}) error {
	err := s.validate.Struct(v)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("validate %T: %w", v, err)
	}
	out := &ValidationError{Fields: make(map[string]string, len(fieldErrs))}
	for _, fe := range fieldErrs {
		problem := fe.Tag()
		if fe.Param() != "" {
			problem += "=" + fe.Param()
		}
		out.Fields[fe.Field()] = problem
	}
	return out
}

// Ping reports whether the document store is reachable.
func (s *Service) Ping(ctx context.Context) error {
	return s.store.Ping(ctx)
}

// publish sends an event; failures are logged and never surface to the caller.
func (s *Service) publish(ctx context.Context, event string, payload interface{}) {
	if err := s.events.Publish(ctx, event, payload); err != nil {
		log.WithError(err).WithField("event", event).Warn("Failed to publish event")
	}
}
