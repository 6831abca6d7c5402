package resources

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

//go:embed bundles/*.yaml
var bundleFS embed.FS

// DefaultLocale is the locale every other bundle falls back to
const DefaultLocale = "en"

// ErrMissingString is returned when no bundle in the fallback chain defines a key
var ErrMissingString = errors.New("string resource not found")

// ErrUnknownLocale is returned when a locale has no bundle
var ErrUnknownLocale = errors.New("unknown locale")

// Provider is a read-only key to string lookup
type Provider interface {
	String(key string) (string, error)
}

// Bundle holds the strings of one locale
type Bundle struct {
	Locale  string            `yaml:"locale"`
	Strings map[string]string `yaml:"strings"`

	fallback *Bundle
}

// ParseBundle decodes a YAML bundle document
func ParseBundle(data []byte) (*Bundle, error) {
	var b Bundle
	if err := yaml.Unmarshal(data, &b); err != nil {
		return nil, fmt.Errorf("decode bundle: %w", err)
	}
	if b.Strings == nil {
		b.Strings = map[string]string{}
	}
	return &b, nil
}

// NewBundle creates a bundle from a map, mostly useful as a fixture
func NewBundle(locale string, values map[string]string) *Bundle {
	return &Bundle{Locale: locale, Strings: values}
}

// String looks a key up in this bundle, then in its fallback
func (b *Bundle) String(key string) (string, error) {
	for cur := b; cur != nil; cur = cur.fallback {
		if v, ok := cur.Strings[key]; ok && v != "" {
			return v, nil
		}
	}
	return "", fmt.Errorf("%w: %s (locale %s)", ErrMissingString, key, b.Locale)
}

// Lookup returns the string for key, or def when it is missing
func (b *Bundle) Lookup(key, def string) string {
	v, err := b.String(key)
	if err != nil {
		return def
	}
	return v
}

// Set is the collection of bundles available to the application
type Set struct {
	bundles    map[string]*Bundle
	locales    []string
	defaultLoc string
	matcher    language.Matcher
}

// Load loads the bundles embedded in the binary
func Load() (*Set, error) {
	return LoadFS(bundleFS, "bundles", DefaultLocale)
}

// LoadFS loads every *.yaml bundle found in dir. The bundle for defaultLocale must exist.
func LoadFS(fsys fs.FS, dir, defaultLocale string) (*Set, error) {
	files, err := fs.Glob(fsys, path.Join(dir, "*.yaml"))
	if err != nil {
		return nil, fmt.Errorf("list bundles: %w", err)
	}

	bundles := make(map[string]*Bundle, len(files))
	for _, file := range files {
		data, err := fs.ReadFile(fsys, file)
		if err != nil {
			return nil, fmt.Errorf("read bundle %s: %w", file, err)
		}
		b, err := ParseBundle(data)
		if err != nil {
			return nil, fmt.Errorf("bundle %s: %w", file, err)
		}
		if b.Locale == "" {
			b.Locale = strings.TrimSuffix(path.Base(file), path.Ext(file))
		}
		bundles[b.Locale] = b
	}

	def, ok := bundles[defaultLocale]
	if !ok {
		return nil, fmt.Errorf("%w: default bundle %q", ErrUnknownLocale, defaultLocale)
	}

	locales := make([]string, 0, len(bundles))
	for loc, b := range bundles {
		if loc != defaultLocale {
			b.fallback = def
		}
		locales = append(locales, loc)
	}
	sort.Strings(locales)

	// The matcher falls back to its first tag, so the default goes first
	tags := []language.Tag{language.Make(defaultLocale)}
	order := []string{defaultLocale}
	for _, loc := range locales {
		if loc == defaultLocale {
			continue
		}
		tags = append(tags, language.Make(loc))
		order = append(order, loc)
	}

	return &Set{
		bundles:    bundles,
		locales:    order,
		defaultLoc: defaultLocale,
		matcher:    language.NewMatcher(tags),
	}, nil
}

// Locales returns the available locales, default first
func (s *Set) Locales() []string {
	out := make([]string, len(s.locales))
	copy(out, s.locales)
	return out
}

// Default returns the default bundle
func (s *Set) Default() *Bundle {
	return s.bundles[s.defaultLoc]
}

// Get returns the bundle for an exact locale name
func (s *Set) Get(locale string) (*Bundle, error) {
	b, ok := s.bundles[locale]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownLocale, locale)
	}
	return b, nil
}

// Match picks the best bundle for an Accept-Language header value. It reports
// false, with the default bundle, when no bundle matches.
func (s *Set) Match(acceptLanguage string) (*Bundle, bool) {
	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return s.Default(), false
	}
	_, idx, conf := s.matcher.Match(tags...)
	if conf == language.No || idx < 0 || idx >= len(s.locales) {
		return s.Default(), false
	}
	return s.bundles[s.locales[idx]], true
}

// Pick returns the bundle for an explicit locale when it exists, then the best
// match for the Accept-Language header, then the bundle for fallback
func (s *Set) Pick(locale, acceptLanguage, fallback string) *Bundle {
	if locale != "" {
		if b, err := s.Get(locale); err == nil {
			return b
		}
	}
	if b, ok := s.Match(acceptLanguage); ok {
		return b
	}
	if b, err := s.Get(fallback); err == nil {
		return b
	}
	return s.Default()
}
