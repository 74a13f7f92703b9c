package staff

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"testing"

	"github.com/tlca-systems/register-backend/pkg/db/models"
	apperrors "github.com/tlca-systems/register-backend/pkg/errors"
	"github.com/tlca-systems/register-backend/pkg/logger"
)

type fakeRepository struct {
	employees []models.Employee
	listErr   error
	created   []models.Employee
}

func (f *fakeRepository) ListActive(context.Context) ([]models.Employee, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.employees, nil
}

func (f *fakeRepository) Create(_ context.Context, employee *models.Employee) error {
	f.created = append(f.created, *employee)
	return nil
}

func (f *fakeRepository) Deactivate(context.Context, string) error { return nil }

type fakeCache struct {
	mu        sync.Mutex
	employees []models.Employee
	readErr   error
}

func (f *fakeCache) ReadEmployees(context.Context) ([]models.Employee, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.readErr != nil {
		return nil, f.readErr
	}
	return f.employees, nil
}

func (f *fakeCache) WriteEmployees(_ context.Context, employees []models.Employee) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.employees = employees
	return nil
}

func newTestService(t *testing.T, repo Repository, cache Cache) *Service {
	t.Helper()
	svc, err := NewService(ServiceParams{
		Repository: repo,
		Cache:      cache,
		Logger:     logger.New(logger.Options{ServiceName: "test", Output: io.Discard}),
	})
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	if err := svc.Load(context.Background()); err != nil {
		t.Fatalf("Load: %v", err)
	}
	return svc
}

func TestLoadFallsBackToSeedRoster(t *testing.T) {
	svc := newTestService(t, &fakeRepository{listErr: errors.New("unreachable")}, &fakeCache{})

	roster := svc.List()
	if len(roster) != 5 {
		t.Fatalf("expected 5 seeded employees, got %d", len(roster))
	}
	cat, err := svc.LookupBySlug(context.Background(), "cat")
	if err != nil {
		t.Fatalf("LookupBySlug: %v", err)
	}
	if cat.Name != "Cat" || cat.ID != "emp_1" {
		t.Fatalf("unexpected seed employee: %+v", cat)
	}
}

func TestLookupUnknownEmployee(t *testing.T) {
	svc := newTestService(t, nil, &fakeCache{})

	_, err := svc.Lookup(context.Background(), "emp_999")
	if err == nil {
		t.Fatal("expected error for unknown employee")
	}
	appErr := apperrors.As(err)
	if appErr == nil || appErr.Code() != apperrors.CodeNotFound {
		t.Fatalf("expected not-found code, got %v", err)
	}
}

func TestAddGeneratesUniqueSlug(t *testing.T) {
	svc := newTestService(t, nil, &fakeCache{})

	first, err := svc.Add(context.Background(), "  Doc Holliday  ")
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	if first.Slug != "doc-holliday" {
		t.Fatalf("expected slug doc-holliday, got %q", first.Slug)
	}
	if first.Name != "Doc Holliday" {
		t.Fatalf("expected trimmed name, got %q", first.Name)
	}

	second, err := svc.Add(context.Background(), "Doc Holliday")
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	if second.Slug != "doc-holliday-2" {
		t.Fatalf("expected deduplicated slug, got %q", second.Slug)
	}
}

func TestAddRejectsBlankName(t *testing.T) {
	svc := newTestService(t, nil, &fakeCache{})

	_, err := svc.Add(context.Background(), "   ")
	if err == nil {
		t.Fatal("expected validation error")
	}
	appErr := apperrors.As(err)
	if appErr == nil || appErr.Code() != apperrors.CodeValidation {
		t.Fatalf("expected validation code, got %v", err)
	}
}

func TestRemoveDropsEmployee(t *testing.T) {
	cache := &fakeCache{}
	svc := newTestService(t, nil, cache)

	if err := svc.Remove(context.Background(), "emp_5"); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if len(svc.List()) != 4 {
		t.Fatalf("expected 4 employees, got %d", len(svc.List()))
	}
	if len(cache.employees) != 4 {
		t.Fatal("expected roster change to be persisted")
	}

	if err := svc.Remove(context.Background(), "emp_5"); err == nil {
		t.Fatal("expected error for already-removed employee")
	}
}

func TestAddConcurrentKeepsEveryEmployeeAndSlugUnique(t *testing.T) {
	svc := newTestService(t, nil, &fakeCache{})
	seeded := len(svc.List())

	const workers = 8
	const perWorker = 25

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < perWorker; i++ {
				if _, err := svc.Add(context.Background(), fmt.Sprintf("Clerk %d %d", w, i)); err != nil {
					t.Errorf("Add: %v", err)
					return
				}
			}
		}(w)
	}
	wg.Wait()

	roster := svc.List()
	if got := len(roster); got != seeded+workers*perWorker {
		t.Fatalf("expected %d employees after concurrent adds, got %d", seeded+workers*perWorker, got)
	}
	slugs := make(map[string]bool, len(roster))
	for _, employee := range roster {
		if slugs[employee.Slug] {
			t.Fatalf("duplicate slug %q", employee.Slug)
		}
		slugs[employee.Slug] = true
	}
}
