package getconf

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"sync"
	"time"

	"go.uber.org/zap"
)

// SeenKey records one distinct (key, doc, default, type) combination ever
// requested from a Getter. Defaults are stored in their formatted form
// (lists comma-joined, booleans as on/off) so value-equal defaults
// deduplicate regardless of how they were supplied.
type SeenKey struct {
	Key     string
	Section string
	Entry   string
	EnvVar  string
	Doc     string
	Default string
	Type    string
}

// Getter resolves dotted configuration keys through an ordered chain of
// finders: environment variables first, then configuration files, then
// in-memory defaults. The first finder that knows the key wins; presence,
// not truthiness, decides, so an empty value in a higher-priority source
// still shorts the chain.
//
// File discovery and parsing happen once, at construction. The parsed
// data is read-only afterwards; only the seen-key bookkeeping mutates, and
// it is guarded by a mutex, so a Getter is safe for concurrent use.
type Getter struct {
	namespace string
	finders   []Finder
	files     *FileFinder
	validator func(key string) error
	logger    *zap.Logger
	listSep   string

	mu   sync.Mutex
	seen map[SeenKey]struct{}
}

// New creates a Getter for the given namespace (or NoNamespace).
//
// The reserved environment variable NS_CONFIG (CONFIG under NoNamespace)
// names an additional file, directory or glob appended after the
// configured specs, making it the highest-priority file source.
//
// Missing files and empty globs are not errors; syntax errors in files
// that do exist are.
func New(namespace string, opts ...Option) (*Getter, error) {
	s := settings{
		logger:  zap.NewNop(),
		listSep: ",",
	}
	for _, opt := range opts {
		opt(&s)
	}

	g := &Getter{
		namespace: namespace,
		validator: s.validator,
		logger:    s.logger,
		listSep:   s.listSep,
		seen:      make(map[SeenKey]struct{}),
	}

	if len(s.finders) > 0 {
		g.finders = s.finders
		return g, nil
	}

	specs := append([]string(nil), s.files...)
	if extra := os.Getenv(deriveEnvKey(namespace, "config")); extra != "" {
		specs = append(specs, extra)
	}

	files, err := NewFileFinder(specs)
	if err != nil {
		return nil, err
	}
	g.files = files

	g.finders = []Finder{NewEnvFinder(namespace), files}
	if s.defaults != nil {
		g.finders = append(g.finders, NewMapFinder(s.defaults))
	}

	g.logger.Info("configuration loaded",
		zap.Strings("found_files", files.FoundFiles()),
		zap.Strings("search_files", files.SearchFiles()),
	)
	return g, nil
}

// EnvKey returns the environment variable name derived for key under the
// Getter's namespace.
func (g *Getter) EnvKey(key string) string {
	return deriveEnvKey(g.namespace, key)
}

// SearchFiles returns the expanded path specifications supplied for file
// discovery, in input order. Nil when the finder chain is custom.
func (g *Getter) SearchFiles() []string {
	if g.files == nil {
		return nil
	}
	return g.files.SearchFiles()
}

// FoundFiles returns the files actually parsed, least important first.
// Nil when the finder chain is custom.
func (g *Getter) FoundFiles() []string {
	if g.files == nil {
		return nil
	}
	return g.files.FoundFiles()
}

// ListKeys returns every distinct key combination requested so far,
// sorted by section then entry.
func (g *Getter) ListKeys() []SeenKey {
	g.mu.Lock()
	keys := make([]SeenKey, 0, len(g.seen))
	for key := range g.seen {
		keys = append(keys, key)
	}
	g.mu.Unlock()

	sort.Slice(keys, func(i, j int) bool {
		if keys[i].Section != keys[j].Section {
			return keys[i].Section < keys[j].Section
		}
		if keys[i].Entry != keys[j].Entry {
			return keys[i].Entry < keys[j].Entry
		}
		return keys[i].Type < keys[j].Type
	})
	return keys
}

// Section returns an accessor restricted to one section.
func (g *Getter) Section(name string) *SectionGetter {
	return &SectionGetter{getter: g, section: name}
}

// resolve runs the finder chain for key and reports whether any source
// knew it. Every accepted call records a SeenKey, found or not.
func (g *Getter) resolve(key, doc, typeHint, formattedDefault string) (string, bool, error) {
	if g.validator != nil {
		if err := g.validator(key); err != nil {
			return "", false, fmt.Errorf("%w: %v", ErrInvalidKey, err)
		}
	}
	g.record(key, doc, typeHint, formattedDefault)

	for _, finder := range g.finders {
		value, err := finder.Find(key)
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				continue
			}
			return "", false, err
		}
		return value, true, nil
	}
	return "", false, nil
}

func (g *Getter) record(key, doc, typeHint, formattedDefault string) {
	section, entry := SplitSectionKey(key)
	seen := SeenKey{
		Key:     key,
		Section: section,
		Entry:   entry,
		EnvVar:  deriveEnvKey(g.namespace, key),
		Doc:     doc,
		Default: formattedDefault,
		Type:    typeHint,
	}
	g.mu.Lock()
	g.seen[seen] = struct{}{}
	g.mu.Unlock()
}

// SectionGetter proxies the typed accessors of a Getter for one section.
type SectionGetter struct {
	getter  *Getter
	section string
}

func (s *SectionGetter) key(entry string) string {
	return s.section + "." + entry
}

func (s *SectionGetter) GetString(entry, def, doc string) (string, error) {
	return s.getter.GetString(s.key(entry), def, doc)
}

func (s *SectionGetter) GetList(entry, def, doc string) ([]string, error) {
	return s.getter.GetList(s.key(entry), def, doc)
}

func (s *SectionGetter) GetBool(entry string, def bool, doc string) (bool, error) {
	return s.getter.GetBool(s.key(entry), def, doc)
}

func (s *SectionGetter) GetInt(entry string, def int, doc string) (int, error) {
	return s.getter.GetInt(s.key(entry), def, doc)
}

func (s *SectionGetter) GetFloat(entry string, def float64, doc string) (float64, error) {
	return s.getter.GetFloat(s.key(entry), def, doc)
}

func (s *SectionGetter) GetDuration(entry, def, doc string) (time.Duration, error) {
	return s.getter.GetDuration(s.key(entry), def, doc)
}

func (s *SectionGetter) GetPath(entry, def, doc string) (string, error) {
	return s.getter.GetPath(s.key(entry), def, doc)
}

func (s *SectionGetter) GetEnum(entry, def string, choices []string, doc string) (string, error) {
	return s.getter.GetEnum(s.key(entry), def, choices, doc)
}
