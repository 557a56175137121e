// Package workspace manages the studio's working directory: the persistent
// "current workspace" pointer, the per-workspace configuration file, linked
// datasets, and dataset groups.
package workspace

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/nirs4all/studio/pkg/log"
)

const (
	appDirName          = "nirs4all-studio"
	globalConfigFile    = "workspace_config.json"
	workspaceConfigFile = "workspace.json"
	pipelinesDirName    = "pipelines"
	resultsDirName      = "results"
)

// Dataset is one linked dataset folder. Linking only registers the path; the
// studio never inspects the data itself.
type Dataset struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Path     string `json:"path"`
	LinkedAt string `json:"linked_at"`
}

// Group is a named collection of linked datasets.
type Group struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	DatasetIDs []string `json:"dataset_ids"`
}

// Config is the per-workspace state persisted as workspace.json inside the
// workspace folder. Pipelines is kept opaque for compatibility with
// workspaces written by earlier tooling.
type Config struct {
	Path         string    `json:"path"`
	Name         string    `json:"name"`
	CreatedAt    string    `json:"created_at"`
	LastAccessed string    `json:"last_accessed"`
	Datasets     []Dataset `json:"datasets"`
	Pipelines    []any     `json:"pipelines"`
	Groups       []Group   `json:"groups"`
}

// globalConfig is the app-data pointer to the currently selected workspace.
type globalConfig struct {
	CurrentWorkspacePath string `json:"current_workspace_path"`
	LastUpdated          string `json:"last_updated"`
}

// Manager owns workspace selection and per-workspace state. All mutating
// operations persist synchronously, so the on-disk files are always the
// source of truth. Safe for concurrent use.
type Manager struct {
	appDataDir string
	logger     *slog.Logger

	mu      sync.Mutex
	current string
	config  *Config
}

// NewManager builds a manager rooted at appDataDir. An empty appDataDir uses
// the user config directory. If a workspace was selected in a previous run
// and still exists it is reopened.
func NewManager(appDataDir string) (*Manager, error) {
	if appDataDir == "" {
		base, err := os.UserConfigDir()
		if err != nil {
			return nil, fmt.Errorf("failed to resolve user config dir: %w", err)
		}

		appDataDir = filepath.Join(base, appDirName)
	}

	if err := os.MkdirAll(appDataDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create app data dir %s: %w", appDataDir, err)
	}

	m := &Manager{
		appDataDir: appDataDir,
		logger:     log.WithModule("workspace"),
	}

	m.restorePrevious()

	return m, nil
}

// restorePrevious reopens the workspace recorded in the global config. A
// stale or unreadable pointer is logged and ignored.
func (m *Manager) restorePrevious() {
	data, err := os.ReadFile(filepath.Join(m.appDataDir, globalConfigFile))
	if err != nil {
		return
	}

	var global globalConfig
	if err := json.Unmarshal(data, &global); err != nil {
		m.logger.Warn("ignoring unreadable workspace pointer", "error", err)

		return
	}

	if global.CurrentWorkspacePath == "" {
		return
	}

	if info, err := os.Stat(global.CurrentWorkspacePath); err != nil || !info.IsDir() {
		m.logger.Warn("previously selected workspace is gone", "path", global.CurrentWorkspacePath)

		return
	}

	if _, err := m.open(global.CurrentWorkspacePath); err != nil {
		m.logger.Warn("failed to reopen workspace", "path", global.CurrentWorkspacePath, "error", err)
	}
}

// Select makes path the current workspace, creating its structure on first
// use and persisting the selection for future runs.
func (m *Manager) Select(path string) (*Config, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("workspace path does not exist: %s", path)
	}

	if !info.IsDir() {
		return nil, fmt.Errorf("workspace path is not a directory: %s", path)
	}

	resolved, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve workspace path %s: %w", path, err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	config, err := m.open(resolved)
	if err != nil {
		return nil, err
	}

	global := globalConfig{
		CurrentWorkspacePath: resolved,
		LastUpdated:          now(),
	}
	if err := writeJSON(filepath.Join(m.appDataDir, globalConfigFile), global); err != nil {
		return nil, err
	}

	m.logger.Info("workspace selected", "path", resolved)

	return copyConfig(config), nil
}

// open loads or initializes the workspace config at path and makes it
// current. Callers hold the lock, except during construction.
func (m *Manager) open(path string) (*Config, error) {
	configPath := filepath.Join(path, workspaceConfigFile)

	config := &Config{
		Path:      path,
		Name:      filepath.Base(path),
		CreatedAt: now(),
		Datasets:  []Dataset{},
		Pipelines: []any{},
		Groups:    []Group{},
	}

	if data, err := os.ReadFile(configPath); err == nil {
		if err := json.Unmarshal(data, config); err != nil {
			m.logger.Warn("rebuilding corrupt workspace config", "path", configPath, "error", err)
		}
	}

	if err := os.MkdirAll(filepath.Join(path, pipelinesDirName), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create pipelines dir: %w", err)
	}

	if err := os.MkdirAll(filepath.Join(path, resultsDirName), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create results dir: %w", err)
	}

	config.Path = path
	config.LastAccessed = now()

	if err := writeJSON(configPath, config); err != nil {
		return nil, err
	}

	m.current = path
	m.config = config

	return config, nil
}

// Current returns a copy of the selected workspace state.
func (m *Manager) Current() (*Config, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.config == nil {
		return nil, ErrNoWorkspace
	}

	return copyConfig(m.config), nil
}

// PipelinesPath returns the pipelines directory of the current workspace.
func (m *Manager) PipelinesPath() (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.current == "" {
		return "", ErrNoWorkspace
	}

	return filepath.Join(m.current, pipelinesDirName), nil
}

// ResultsPath returns the results directory of the current workspace.
func (m *Manager) ResultsPath() (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.current == "" {
		return "", ErrNoWorkspace
	}

	return filepath.Join(m.current, resultsDirName), nil
}

// RefreshAccess re-stamps the workspace's last-accessed time, mirroring the
// on-access update the editor expects when it reads workspace state.
func (m *Manager) RefreshAccess() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.config == nil {
		return ErrNoWorkspace
	}

	return m.persist()
}

// LinkDataset registers a dataset folder with the current workspace. The
// same path cannot be linked twice.
func (m *Manager) LinkDataset(path string) (Dataset, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.config == nil {
		return Dataset{}, ErrNoWorkspace
	}

	resolved, err := filepath.Abs(path)
	if err != nil {
		return Dataset{}, fmt.Errorf("failed to resolve dataset path %s: %w", path, err)
	}

	if _, err := os.Stat(resolved); err != nil {
		return Dataset{}, fmt.Errorf("dataset path does not exist: %s", resolved)
	}

	for _, existing := range m.config.Datasets {
		if existing.Path == resolved {
			return Dataset{}, ErrDatasetLinked
		}
	}

	dataset := Dataset{
		ID:       fmt.Sprintf("dataset_%d", len(m.config.Datasets)+1),
		Name:     filepath.Base(resolved),
		Path:     resolved,
		LinkedAt: now(),
	}

	m.config.Datasets = append(m.config.Datasets, dataset)

	if err := m.persist(); err != nil {
		return Dataset{}, err
	}

	m.logger.Info("dataset linked", "id", dataset.ID, "path", resolved)

	return dataset, nil
}

// UnlinkDataset removes a dataset registration by id.
func (m *Manager) UnlinkDataset(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.config == nil {
		return ErrNoWorkspace
	}

	kept := m.config.Datasets[:0]
	for _, dataset := range m.config.Datasets {
		if dataset.ID != id {
			kept = append(kept, dataset)
		}
	}

	if len(kept) == len(m.config.Datasets) {
		return fmt.Errorf("dataset %s: %w", id, ErrDatasetNotFound)
	}

	m.config.Datasets = kept

	return m.persist()
}

// Groups lists the workspace's dataset groups. Without a selected workspace
// the list is empty rather than an error.
func (m *Manager) Groups() []Group {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.config == nil {
		return []Group{}
	}

	groups := make([]Group, len(m.config.Groups))
	copy(groups, m.config.Groups)

	return groups
}

// CreateGroup adds an empty dataset group.
func (m *Manager) CreateGroup(name string) (Group, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.config == nil {
		return Group{}, ErrNoWorkspace
	}

	group := Group{
		ID:         fmt.Sprintf("group_%d", len(m.config.Groups)+1),
		Name:       name,
		DatasetIDs: []string{},
	}

	m.config.Groups = append(m.config.Groups, group)

	if err := m.persist(); err != nil {
		return Group{}, err
	}

	return group, nil
}

// RenameGroup changes a group's display name.
func (m *Manager) RenameGroup(id, name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.config == nil {
		return ErrNoWorkspace
	}

	for i := range m.config.Groups {
		if m.config.Groups[i].ID == id {
			m.config.Groups[i].Name = name

			return m.persist()
		}
	}

	return fmt.Errorf("group %s: %w", id, ErrGroupNotFound)
}

// DeleteGroup removes a group. Linked datasets themselves are untouched.
func (m *Manager) DeleteGroup(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.config == nil {
		return ErrNoWorkspace
	}

	kept := m.config.Groups[:0]
	for _, group := range m.config.Groups {
		if group.ID != id {
			kept = append(kept, group)
		}
	}

	if len(kept) == len(m.config.Groups) {
		return fmt.Errorf("group %s: %w", id, ErrGroupNotFound)
	}

	m.config.Groups = kept

	return m.persist()
}

// AddDatasetToGroup puts a dataset id into a group; adding it twice is a
// no-op.
func (m *Manager) AddDatasetToGroup(groupID, datasetID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.config == nil {
		return ErrNoWorkspace
	}

	for i := range m.config.Groups {
		group := &m.config.Groups[i]
		if group.ID != groupID {
			continue
		}

		for _, existing := range group.DatasetIDs {
			if existing == datasetID {
				return nil
			}
		}

		group.DatasetIDs = append(group.DatasetIDs, datasetID)

		return m.persist()
	}

	return fmt.Errorf("group %s: %w", groupID, ErrGroupNotFound)
}

// RemoveDatasetFromGroup takes a dataset id out of a group; a dataset not in
// the group is a no-op.
func (m *Manager) RemoveDatasetFromGroup(groupID, datasetID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.config == nil {
		return ErrNoWorkspace
	}

	for i := range m.config.Groups {
		group := &m.config.Groups[i]
		if group.ID != groupID {
			continue
		}

		kept := group.DatasetIDs[:0]
		for _, existing := range group.DatasetIDs {
			if existing != datasetID {
				kept = append(kept, existing)
			}
		}

		group.DatasetIDs = kept

		return m.persist()
	}

	return fmt.Errorf("group %s: %w", groupID, ErrGroupNotFound)
}

// persist writes the workspace config back to its folder, stamping the
// access time. Callers hold the lock.
func (m *Manager) persist() error {
	m.config.LastAccessed = now()

	return writeJSON(filepath.Join(m.current, workspaceConfigFile), m.config)
}

func writeJSON(path string, value any) error {
	data, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize %s: %w", path, err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	return nil
}

func copyConfig(config *Config) *Config {
	clone := *config
	clone.Datasets = append([]Dataset(nil), config.Datasets...)
	clone.Pipelines = append([]any(nil), config.Pipelines...)
	clone.Groups = append([]Group(nil), config.Groups...)

	return &clone
}

func now() string {
	return time.Now().UTC().Format(time.RFC3339)
}
