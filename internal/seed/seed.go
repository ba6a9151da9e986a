// Package seed loads an initial lecture list from a YAML file, used to
// populate an empty store on first run.
package seed

import (
	"fmt"
	"os"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/Smartnaka/SkulBell/internal/domain"
)

// Load reads a YAML list of lectures. Entries that fail validation are
// skipped with a warning rather than aborting the whole file.
func Load(path string, log *zap.Logger) ([]domain.Lecture, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed file: %w", err)
	}

	var entries []domain.Lecture
	if err := yaml.Unmarshal(raw, &entries); err != nil {
		return nil, fmt.Errorf("parse seed file: %w", err)
	}

	out := make([]domain.Lecture, 0, len(entries))
	for i, l := range entries {
		if err := l.Validate(); err != nil {
			log.Warn("skipping seed lecture",
				zap.Int("index", i),
				zap.String("title", l.Title),
				zap.Error(err))
			continue
		}
		out = append(out, l)
	}
	return out, nil
}
