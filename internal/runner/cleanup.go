package runner

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"
)

const defaultCleanupTimeout = 5 * time.Second

// Resource is something that must be released when the run ends, such as
// the input hook, the event bus or a virtual input device.
type Resource interface {
	Cleanup() error
	Name() string
}

type funcResource struct {
	name string
	fn   func() error
}

func (f *funcResource) Cleanup() error { return f.fn() }
func (f *funcResource) Name() string   { return f.name }

// CleanupManager releases registered resources once, in registration order,
// within a timeout. A panicking resource does not stop the others.
type CleanupManager struct {
	mu          sync.Mutex
	resources   []Resource
	timeout     time.Duration
	cleanupOnce sync.Once
	err         error
}

// NewCleanupManager creates a manager; a non-positive timeout means 5s.
func NewCleanupManager(timeout time.Duration) *CleanupManager {
	if timeout <= 0 {
		timeout = defaultCleanupTimeout
	}
	return &CleanupManager{timeout: timeout}
}

// Register adds a resource.
func (cm *CleanupManager) Register(resource Resource) {
	cm.mu.Lock()
	defer cm.mu.Unlock()
	cm.resources = append(cm.resources, resource)
}

// RegisterFunc registers a cleanup function under name. A nil fn is ignored.
func (cm *CleanupManager) RegisterFunc(name string, fn func() error) {
	if fn == nil {
		return
	}
	cm.Register(&funcResource{name: name, fn: fn})
}

// Execute releases every resource. Only the first call does any work;
// later calls return the same result.
func (cm *CleanupManager) Execute() error {
	cm.cleanupOnce.Do(func() {
		cm.err = cm.executeWithTimeout()
	})
	return cm.err
}

func (cm *CleanupManager) executeWithTimeout() error {
	cm.mu.Lock()
	resources := make([]Resource, len(cm.resources))
	copy(resources, cm.resources)
	cm.mu.Unlock()

	if len(resources) == 0 {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), cm.timeout)
	defer cancel()

	done := make(chan struct{})
	var mu sync.Mutex
	var errs []error

	go func() {
		defer close(done)
		for _, resource := range resources {
			err := cleanupOne(resource)
			mu.Lock()
			if err != nil {
				errs = append(errs, err)
			}
			mu.Unlock()
		}
	}()

	select {
	case <-done:
	case <-ctx.Done():
		log.Printf("runner: cleanup timeout after %v, some resources may not have been released", cm.timeout)
		mu.Lock()
		errs = append(errs, errors.New("cleanup timeout exceeded"))
		mu.Unlock()
	}

	mu.Lock()
	defer mu.Unlock()
	return errors.Join(errs...)
}

func cleanupOne(resource Resource) (err error) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("runner: panic releasing %s: %v", resource.Name(), r)
			err = fmt.Errorf("%s: panic during cleanup", resource.Name())
		}
	}()

	if err := resource.Cleanup(); err != nil {
		log.Printf("runner: error releasing %s: %v", resource.Name(), err)
		return fmt.Errorf("%s: %w", resource.Name(), err)
	}
	log.Printf("runner: released %s", resource.Name())
	return nil
}

// Len returns the number of registered resources.
func (cm *CleanupManager) Len() int {
	cm.mu.Lock()
	defer cm.mu.Unlock()
	return len(cm.resources)
}
