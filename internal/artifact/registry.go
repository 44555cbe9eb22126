package artifact

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spiral-cooperative/spiral-deployer/internal/logger"
)

const buildInfoDirName = "build-info"

// Registry resolves contract names to artifacts found under a build output
// directory (Hardhat "artifacts/" or Foundry "out/").
type Registry struct {
	rootDir string
	logger  *slog.Logger
}

// NewRegistry creates a registry rooted at dir
func NewRegistry(dir string) *Registry {
	return &Registry{
		rootDir: dir,
		logger:  logger.Named("artifact_registry"),
	}
}

// Lookup finds the artifact for the named contract and parses it.
func (r *Registry) Lookup(name string) (Artifact, error) {
	path, err := r.find(name)
	if err != nil {
		return Artifact{}, err
	}

	r.logger.With("contract", name).With("path", path).Debug("artifact located")

	data, err := os.ReadFile(path)
	if err != nil {
		return Artifact{}, fmt.Errorf("failed to read artifact %s: %w", path, err)
	}

	return parseArtifact(name, data)
}

// find walks the tree for "<name>.json". Hardhat places it at
// contracts/<File>.sol/<name>.json, Foundry at <File>.sol/<name>.json.
// Hardhat debug files are named <name>.dbg.json and never match.
func (r *Registry) find(name string) (string, error) {
	if _, err := os.Stat(r.rootDir); err != nil {
		return "", fmt.Errorf("artifacts directory '%s': %w", r.rootDir, errors.Join(ErrNotFound, err))
	}

	target := name + ".json"
	var matches []string
	err := filepath.WalkDir(r.rootDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if d.Name() == buildInfoDirName {
				return filepath.SkipDir
			}
			return nil
		}
		if d.Name() == target {
			matches = append(matches, path)
		}
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("failed to scan artifacts directory: %w", err)
	}

	switch len(matches) {
	case 0:
		return "", fmt.Errorf("%w: '%s' under '%s'", ErrNotFound, name, r.rootDir)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("contract name '%s' is ambiguous, found %d artifacts: %s", name, len(matches), strings.Join(matches, ", "))
	}
}
