package main

import (
	"context"
	"fmt"
	"sync"
)

// Service is the lifecycle interface every application service
// implements.
type Service interface {
	// Name returns the service name used in logs and errors.
	Name() string
	// Initialize runs after dependency wiring completes.
	Initialize(ctx context.Context) error
	// Shutdown releases the service's resources.
	Shutdown() error
}

type serviceEntry struct {
	service  Service
	name     string
	critical bool // failure blocks startup
}

// ServiceRegistry manages all service instances centrally.
type ServiceRegistry struct {
	ctx      context.Context
	logger   func(string)
	services []serviceEntry
	byName   map[string]Service
	mu       sync.RWMutex
}

// NewServiceRegistry creates an empty registry.
func NewServiceRegistry(ctx context.Context, logger func(string)) *ServiceRegistry {
	return &ServiceRegistry{
		ctx:      ctx,
		logger:   logger,
		services: make([]serviceEntry, 0),
		byName:   make(map[string]Service),
	}
}

// Register adds a non-critical service. Duplicate names error.
func (r *ServiceRegistry) Register(svc Service) error {
	return r.register(svc, false)
}

// RegisterCritical adds a service whose initialization failure aborts
// startup.
func (r *ServiceRegistry) RegisterCritical(svc Service) error {
	return r.register(svc, true)
}

func (r *ServiceRegistry) register(svc Service, critical bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	name := svc.Name()
	if _, exists := r.byName[name]; exists {
		return WrapError("ServiceRegistry", "Register", fmt.Errorf("service %q already registered", name))
	}

	r.services = append(r.services, serviceEntry{
		service:  svc,
		name:     name,
		critical: critical,
	})
	r.byName[name] = svc
	return nil
}

// Get returns a service by name; callers perform the type assertion.
func (r *ServiceRegistry) Get(name string) (Service, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	svc, ok := r.byName[name]
	return svc, ok
}

// InitializeAll initializes services in registration order. A critical
// failure returns immediately; non-critical failures are logged and
// startup continues degraded.
func (r *ServiceRegistry) InitializeAll() error {
	r.mu.RLock()
	entries := make([]serviceEntry, len(r.services))
	copy(entries, r.services)
	r.mu.RUnlock()

	for _, entry := range entries {
		if err := entry.service.Initialize(r.ctx); err != nil {
			if entry.critical {
				r.logger(fmt.Sprintf("Critical service %q failed to initialize: %v", entry.name, err))
				return WrapError("ServiceRegistry", "InitializeAll", fmt.Errorf("critical service %q failed: %w", entry.name, err))
			}
			r.logger(fmt.Sprintf("Non-critical service %q failed to initialize (degraded): %v", entry.name, err))
		}
	}
	return nil
}

// ShutdownAll shuts services down in reverse registration order.
// Errors are logged and do not stop the remaining shutdowns.
func (r *ServiceRegistry) ShutdownAll() {
	r.mu.RLock()
	entries := make([]serviceEntry, len(r.services))
	copy(entries, r.services)
	r.mu.RUnlock()

	for i := len(entries) - 1; i >= 0; i-- {
		entry := entries[i]
		if err := entry.service.Shutdown(); err != nil {
			r.logger(fmt.Sprintf("Service %q shutdown error: %v", entry.name, err))
		}
	}
}
