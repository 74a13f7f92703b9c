// Package staff is the employee directory: who can run a register session
// and the display name stamped on their orders.
package staff

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/tlca-systems/register-backend/pkg/db/models"
	"github.com/tlca-systems/register-backend/pkg/errors"
	"github.com/tlca-systems/register-backend/pkg/logger"
)

// Cache is the local fallback slot for the staff list.
type Cache interface {
	ReadEmployees(ctx context.Context) ([]models.Employee, error)
	WriteEmployees(ctx context.Context, employees []models.Employee) error
}

// SeedEmployees is the built-in staff roster used when neither the remote
// table nor the cache has one.
func SeedEmployees() []models.Employee {
	return []models.Employee{
		{ID: "emp_1", Name: "Cat", Slug: "cat", IsActive: true},
		{ID: "emp_2", Name: "Tom", Slug: "tom", IsActive: true},
		{ID: "emp_3", Name: "Rob", Slug: "rob", IsActive: true},
		{ID: "emp_4", Name: "Morris", Slug: "morris", IsActive: true},
		{ID: "emp_5", Name: "Extra", Slug: "extra", IsActive: true},
	}
}

// Service is the staff directory for one register session.
type Service struct {
	mu        sync.RWMutex
	employees []models.Employee
	repo      Repository
	cache     Cache
	logg      *logger.Logger
}

// ServiceParams configure the staff service.
type ServiceParams struct {
	Repository Repository
	Cache      Cache
	Logger     *logger.Logger
}

// NewService builds a staff service. Repository may be nil for an offline
// session.
func NewService(params ServiceParams) (*Service, error) {
	if params.Cache == nil {
		return nil, errors.New(errors.CodeInternal, "staff: cache is required")
	}
	if params.Logger == nil {
		return nil, errors.New(errors.CodeInternal, "staff: logger is required")
	}
	return &Service{
		repo:  params.Repository,
		cache: params.Cache,
		logg:  params.Logger,
	}, nil
}

// Load hydrates the roster: remote table first, then the cache slot, then
// the built-in seed.
func (s *Service) Load(ctx context.Context) error {
	if s.repo != nil {
		employees, err := s.repo.ListActive(ctx)
		if err == nil && len(employees) > 0 {
			s.replace(ctx, employees)
			return nil
		}
		if err != nil {
			s.logg.Error(ctx, "staff: remote load failed, falling back to cache", err)
		}
	}

	employees, err := s.cache.ReadEmployees(ctx)
	if err != nil {
		s.logg.Error(ctx, "staff: cached roster unreadable, using seed", err)
		employees = nil
	}
	if len(employees) == 0 {
		employees = SeedEmployees()
	}
	s.replace(ctx, employees)
	return nil
}

func (s *Service) replace(ctx context.Context, employees []models.Employee) {
	s.mu.Lock()
	s.employees = employees
	s.mu.Unlock()
	s.persist(ctx, employees)
}

// snapshotLocked copies the roster for use outside the lock. Callers must
// hold s.mu.
func (s *Service) snapshotLocked() []models.Employee {
	out := make([]models.Employee, len(s.employees))
	copy(out, s.employees)
	return out
}

func (s *Service) persist(ctx context.Context, employees []models.Employee) {
	if err := s.cache.WriteEmployees(ctx, employees); err != nil {
		s.logg.Error(ctx, "staff: failed to persist roster", err)
	}
}

// List returns the active roster.
func (s *Service) List() []models.Employee {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Employee, len(s.employees))
	copy(out, s.employees)
	return out
}

// Lookup finds an employee by id.
func (s *Service) Lookup(_ context.Context, employeeID string) (*models.Employee, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i := range s.employees {
		if s.employees[i].ID == employeeID {
			employee := s.employees[i]
			return &employee, nil
		}
	}
	return nil, errors.New(errors.CodeNotFound, fmt.Sprintf("employee %q not found", employeeID))
}

// LookupBySlug finds an employee by their URL handle.
func (s *Service) LookupBySlug(_ context.Context, slug string) (*models.Employee, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i := range s.employees {
		if s.employees[i].Slug == slug {
			employee := s.employees[i]
			return &employee, nil
		}
	}
	return nil, errors.New(errors.CodeNotFound, fmt.Sprintf("employee with slug %q not found", slug))
}

// Add records a new employee with a generated id and a unique slug.
func (s *Service) Add(ctx context.Context, name string) (*models.Employee, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return nil, errors.New(errors.CodeValidation, "employee name is required")
	}

	// Slug generation and the append must share one critical section so
	// concurrent adds cannot mint the same slug or drop each other's rows.
	s.mu.Lock()
	existing := make(map[string]bool, len(s.employees))
	for _, employee := range s.employees {
		existing[employee.Slug] = true
	}
	employee := models.Employee{
		ID:       newEmployeeID(),
		Name:     trimmed,
		Slug:     uniqueSlug(slugify(trimmed), existing),
		IsActive: true,
	}
	s.employees = append(s.employees, employee)
	snapshot := s.snapshotLocked()
	s.mu.Unlock()

	if s.repo != nil {
		if err := s.repo.Create(ctx, &employee); err != nil {
			s.logg.Error(ctx, "staff: remote create failed, keeping employee locally", err)
		}
	}
	s.persist(ctx, snapshot)
	return &employee, nil
}

// Remove deactivates an employee. Their past orders keep the name snapshot.
func (s *Service) Remove(ctx context.Context, employeeID string) error {
	if _, err := s.Lookup(ctx, employeeID); err != nil {
		return err
	}

	if s.repo != nil {
		if err := s.repo.Deactivate(ctx, employeeID); err != nil {
			s.logg.Error(ctx, "staff: remote deactivate failed, removing locally", err)
		}
	}

	s.mu.Lock()
	next := make([]models.Employee, 0, len(s.employees))
	for _, employee := range s.employees {
		if employee.ID == employeeID {
			continue
		}
		next = append(next, employee)
	}
	s.employees = next
	s.mu.Unlock()

	s.persist(ctx, next)
	return nil
}

var slugCleaner = regexp.MustCompile(`[^a-z0-9]+`)

func slugify(name string) string {
	slug := strings.ToLower(strings.TrimSpace(name))
	slug = slugCleaner.ReplaceAllString(slug, "-")
	slug = strings.Trim(slug, "-")
	if slug == "" {
		return "staff"
	}
	return slug
}

func uniqueSlug(base string, existing map[string]bool) string {
	slug := base
	counter := 1
	for existing[slug] {
		counter++
		slug = fmt.Sprintf("%s-%d", base, counter)
	}
	return slug
}

func newEmployeeID() string {
	return "emp_" + strconv.FormatInt(time.Now().UnixNano(), 36)
}
