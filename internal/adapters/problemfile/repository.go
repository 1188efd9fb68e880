package problemfile

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"ride-schedule-service/internal/domain"
	"ride-schedule-service/internal/ports"
	"sort"
	"strings"
	"sync"
)

// Ext is the file extension of problem inputs.
const Ext = ".in"

// DirRepository serves problem files from a directory.
type DirRepository struct {
	Dir string
}

func NewDirRepository(dir string) *DirRepository {
	return &DirRepository{Dir: dir}
}

// Return the names of all *.in files in the directory.
func (d *DirRepository) ListProblems(ctx context.Context) ([]string, error) {
	paths, err := filepath.Glob(filepath.Join(d.Dir, "*"+Ext))
	if err != nil {
		return nil, fmt.Errorf("list problems: glob %q: %w", d.Dir, err)
	}

	names := make([]string, 0, len(paths))
	for _, p := range paths {
		names = append(names, NameFromPath(p))
	}
	sort.Strings(names)
	return names, nil
}

// Load and parse <Dir>/<name>.in.
func (d *DirRepository) LoadProblem(ctx context.Context, name string) (*domain.Instance, error) {
	name = strings.TrimSpace(name)
	if name == "" || strings.ContainsAny(name, `/\`) {
		return nil, fmt.Errorf("load problem %q: invalid name", name)
	}

	path := filepath.Join(d.Dir, name+Ext)
	inst, err := ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("load problem %q: %w", name, ports.ErrProblemNotFound)
		}
		return nil, fmt.Errorf("load problem %q: %w", name, err)
	}
	return inst, nil
}

// MemoryRepository keeps instances in memory.
type MemoryRepository struct {
	mu        sync.RWMutex
	instances map[string]*domain.Instance
}

func NewMemoryRepository(instances ...*domain.Instance) *MemoryRepository {
	m := &MemoryRepository{instances: make(map[string]*domain.Instance, len(instances))}
	for _, in := range instances {
		m.Add(in)
	}
	return m
}

// Add stores a copy of the instance under its name.
func (m *MemoryRepository) Add(in *domain.Instance) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.instances[in.Name] = copyInstance(in)
}

func (m *MemoryRepository) ListProblems(ctx context.Context) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	names := make([]string, 0, len(m.instances))
	for name := range m.instances {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

func (m *MemoryRepository) LoadProblem(ctx context.Context, name string) (*domain.Instance, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	in, ok := m.instances[name]
	if !ok {
		return nil, fmt.Errorf("load problem %q: %w", name, ports.ErrProblemNotFound)
	}
	return copyInstance(in), nil
}

func copyInstance(in *domain.Instance) *domain.Instance {
	return &domain.Instance{
		Name:     in.Name,
		Problem:  in.Problem,
		Vehicles: in.CloneVehicles(),
		Rides:    in.CloneRides(),
	}
}
