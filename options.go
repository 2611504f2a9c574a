package getconf

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
)

// settings collects construction options for a Getter.
type settings struct {
	files     []string
	defaults  map[string]map[string]string
	finders   []Finder
	validator func(key string) error
	logger    *zap.Logger
	listSep   string
}

// Option configures a Getter at construction time.
type Option func(*settings)

// WithFiles sets the ordered list of file, directory and glob path
// specifications to load, least important first. Empty specs are skipped.
func WithFiles(specs ...string) Option {
	return func(s *settings) {
		s.files = append(s.files, specs...)
	}
}

// WithDefaults installs an in-memory section -> entry -> value structure
// as the lowest-priority source. The map is not copied and must not be
// mutated afterwards.
func WithDefaults(data map[string]map[string]string) Option {
	return func(s *settings) {
		s.defaults = data
	}
}

// WithFinders replaces the default env/files/defaults chain with a custom
// ordered finder list, highest priority first. File-related options and
// the NS_CONFIG environment variable are ignored for custom chains.
func WithFinders(finders ...Finder) Option {
	return func(s *settings) {
		s.finders = finders
	}
}

// WithKeyValidator installs a validator run against every requested key
// before resolution. A rejected key fails with ErrInvalidKey and is not
// recorded.
func WithKeyValidator(fn func(key string) error) Option {
	return func(s *settings) {
		s.validator = fn
	}
}

// WithSectionRequired rejects keys that do not name a section.
func WithSectionRequired() Option {
	return WithKeyValidator(func(key string) error {
		if !strings.Contains(key, ".") {
			return fmt.Errorf("key %q has no section", key)
		}
		return nil
	})
}

// WithLogger sets the logger used for load reporting and coercion
// failures. The default is a no-op logger.
func WithLogger(logger *zap.Logger) Option {
	return func(s *settings) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithListSeparator changes the separator GetList splits on (default ",").
func WithListSeparator(sep string) Option {
	return func(s *settings) {
		if sep != "" {
			s.listSep = sep
		}
	}
}
