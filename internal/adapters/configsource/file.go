// Package configsource provides the [ports.ResolverConfigSource]
// implementations: YAML files loaded with koanf, Redis hashes and a static
// in-memory map.
//
// Every source uses the same mapping per config domain, tag -> entity type
// name. In YAML a domain file looks like
//
//	invoice:
//	  model: invoice
//	customer:
//	  model: customer
//
// and the shorthand "invoice: invoice" is accepted too.
package configsource

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/jsamuelsen11/go-action-resolver/internal/domain"
	"github.com/jsamuelsen11/go-action-resolver/internal/platform/logging"
	"github.com/jsamuelsen11/go-action-resolver/internal/ports"
)

// Compile-time interface check.
var _ ports.ResolverConfigSource = (*File)(nil)

// File loads {dir}/{domain}.yaml.
type File struct {
	dir    string
	logger *slog.Logger
}

// NewFile creates a file source rooted at dir.
func NewFile(dir string, logger *slog.Logger) *File {
	return &File{dir: dir, logger: logging.OrDiscard(logger)}
}

// LoadDomain implements ports.ResolverConfigSource. A missing file is an
// unknown domain and yields an empty map.
func (f *File) LoadDomain(ctx context.Context, configDomain string) (map[string]string, error) {
	if err := validateDomain(configDomain); err != nil {
		return nil, err
	}

	path := filepath.Join(f.dir, configDomain+".yaml")
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			f.logger.DebugContext(ctx, "resolver config file not found",
				slog.String("domain", configDomain),
				slog.String("path", path),
			)
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}

	k := koanf.New(".")
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return nil, fmt.Errorf("loading resolver config %s: %w", path, err)
	}

	mapping, err := parseMapping(k.Raw())
	if err != nil {
		return nil, fmt.Errorf("parsing resolver config %s: %w", path, err)
	}
	return mapping, nil
}

// parseMapping reads tag -> {model: name} or tag -> name entries.
func parseMapping(raw map[string]any) (map[string]string, error) {
	out := make(map[string]string, len(raw))
	for tag, v := range raw {
		switch entry := v.(type) {
		case string:
			out[tag] = entry
		case map[string]any:
			model, ok := entry["model"].(string)
			if !ok || model == "" {
				return nil, fmt.Errorf("tag %q: model must be a non-empty string", tag)
			}
			out[tag] = model
		default:
			return nil, fmt.Errorf("tag %q: unsupported value %T", tag, v)
		}
	}
	return out, nil
}

// validateDomain rejects names that could escape the config directory or
// Redis key space.
func validateDomain(configDomain string) error {
	if strings.TrimSpace(configDomain) == "" {
		return fmt.Errorf("%w: config domain must not be empty", domain.ErrValidation)
	}
	if strings.ContainsAny(configDomain, `/\`) || strings.Contains(configDomain, "..") {
		return fmt.Errorf("%w: invalid config domain %q", domain.ErrValidation, configDomain)
	}
	return nil
}
