package postprocessors

import (
	"github.com/custodia-labs/mineguard-cli/internal/core/ports/driven"
	"github.com/custodia-labs/mineguard-cli/internal/postprocessors/paginate"
	"github.com/custodia-labs/mineguard-cli/internal/postprocessors/tidy"
)

// DefaultOrder is the processor order used when none is configured.
var DefaultOrder = []string{"tidy", "paginate"}

// RegisterDefaults registers all built-in processors with the registry.
// Call this during application initialisation to enable standard processors.
func RegisterDefaults(r *Registry) {
	r.Register("tidy", buildTidy)
	r.Register("paginate", buildPaginate)
}

func buildTidy(_ map[string]any) (driven.PostProcessor, error) {
	return tidy.New(), nil
}

// buildPaginate creates a paginate processor from generic config.
// Supported config keys:
//   - page_size (int): Characters per page (default: 3000)
func buildPaginate(cfg map[string]any) (driven.PostProcessor, error) {
	var opts []paginate.Option

	if size := getIntFromConfig(cfg, "page_size"); size > 0 {
		opts = append(opts, paginate.WithPageSize(size))
	}

	return paginate.New(opts...), nil
}

// getIntFromConfig safely extracts an int from generic config map.
// Handles int, int64, and float64 types that may come from TOML/JSON parsing.
func getIntFromConfig(cfg map[string]any, key string) int {
	val, ok := cfg[key]
	if !ok {
		return 0
	}

	switch v := val.(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	default:
		return 0
	}
}
