package persistence

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/Karthikk7293/social-media-handler/domain/dto"
	"github.com/Karthikk7293/social-media-handler/domain/repository"
	"github.com/Karthikk7293/social-media-handler/infrastructure/logger"
)

// FileDashboardSource reads a snapshot fixture. The decoder is picked by extension
// (.yaml/.yml for YAML, anything else JSON).
type FileDashboardSource struct {
	path string
}

func NewFileDashboardSource(path string) repository.IDashboardSource {
	return &FileDashboardSource{path: path}
}

func (s *FileDashboardSource) Fetch(_ context.Context) (*dto.DashboardSnapshot, error) {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read dashboard fixture %s: %w", s.path, err)
	}
	snapshot, err := DecodeSnapshot(raw, filepath.Ext(s.path))
	if err != nil {
		return nil, fmt.Errorf("failed to decode dashboard fixture %s: %w", s.path, err)
	}
	logger.GetLogger().WithFields(map[string]interface{}{
		"path":      s.path,
		"platforms": len(snapshot.Platforms),
		"periods":   len(snapshot.Engagement),
	}).Info("Dashboard fixture loaded")
	return snapshot, nil
}

// DecodeSnapshot decodes raw bytes as YAML for .yaml/.yml and JSON otherwise.
// Unknown JSON fields are rejected so typos in fixtures surface early.
func DecodeSnapshot(raw []byte, ext string) (*dto.DashboardSnapshot, error) {
	var snapshot dto.DashboardSnapshot
	switch strings.ToLower(ext) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(raw, &snapshot); err != nil {
			return nil, err
		}
	default:
		dec := json.NewDecoder(bytes.NewReader(raw))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&snapshot); err != nil {
			return nil, err
		}
	}
	return &snapshot, nil
}
