package content

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"gopkg.in/yaml.v3"
)

// ErrNotFound is returned when no page exists for the slug in any candidate
// language.
var ErrNotFound = errors.New("content: not found")

// Page is a localized static page sourced from local markdown.
type Page struct {
	Slug        string
	Lang        string
	Title       string
	Summary     string
	Description string
	Body        template.HTML
	UpdatedAt   time.Time
}

type frontMatter struct {
	Title       string `yaml:"title"`
	Summary     string `yaml:"summary"`
	Description string `yaml:"description"`
	Lang        string `yaml:"lang"`
	UpdatedAt   string `yaml:"updated_at"`
}

const defaultCacheTTL = 5 * time.Minute

// Store loads markdown pages from a directory laid out as <dir>/<lang>/<slug>.md,
// renders them to sanitized HTML, and caches the result.
type Store struct {
	dir      string
	fallback string

	mu    sync.RWMutex
	ttl   time.Duration
	cache map[string]cacheEntry

	md       goldmark.Markdown
	sanitize *bluemonday.Policy
}

type cacheEntry struct {
	page    Page
	expires time.Time
}

// NewStore creates a page store rooted at dir. Pages missing in the requested
// language fall back to fallbackLang.
func NewStore(dir, fallbackLang string) *Store {
	return &Store{
		dir:      dir,
		fallback: fallbackLang,
		ttl:      defaultCacheTTL,
		cache:    map[string]cacheEntry{},
		md:       goldmark.New(),
		sanitize: bluemonday.UGCPolicy(),
	}
}

// SetCacheTTL overrides the cache duration, primarily for tests.
func (s *Store) SetCacheTTL(d time.Duration) {
	if d <= 0 {
		d = time.Minute
	}
	s.mu.Lock()
	s.ttl = d
	s.mu.Unlock()
}

// Get returns the page for slug in lang, falling back to the default language
// when the localized file does not exist.
func (s *Store) Get(slug, lang string) (Page, error) {
	slug = sanitizeSlug(slug)
	if slug == "" {
		return Page{}, ErrNotFound
	}
	lang = strings.ToLower(strings.TrimSpace(lang))
	if lang == "" {
		lang = s.fallback
	}

	key := lang + "|" + slug
	if page, ok := s.cached(key); ok {
		return page, nil
	}

	for _, candidate := range s.langChain(lang) {
		page, err := s.read(slug, candidate)
		if err == nil {
			s.store(key, page)
			return page, nil
		}
		if !errors.Is(err, ErrNotFound) {
			return Page{}, err
		}
	}
	return Page{}, ErrNotFound
}

func (s *Store) langChain(lang string) []string {
	if lang == s.fallback {
		return []string{lang}
	}
	return []string{lang, s.fallback}
}

func (s *Store) read(slug, lang string) (Page, error) {
	file := filepath.Join(s.dir, lang, slug+".md")
	data, err := os.ReadFile(file)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Page{}, ErrNotFound
		}
		return Page{}, err
	}

	fm, body := splitFrontMatter(string(data))
	front := frontMatter{}
	if strings.TrimSpace(fm) != "" {
		if err := yaml.Unmarshal([]byte(fm), &front); err != nil {
			return Page{}, fmt.Errorf("content: parse front matter %s: %w", file, err)
		}
	}

	var buf bytes.Buffer
	if err := s.md.Convert([]byte(body), &buf); err != nil {
		return Page{}, fmt.Errorf("content: render %s: %w", file, err)
	}
	rendered := s.sanitize.SanitizeBytes(buf.Bytes())

	page := Page{
		Slug:        slug,
		Lang:        firstNonEmpty(strings.TrimSpace(front.Lang), lang),
		Title:       strings.TrimSpace(front.Title),
		Summary:     strings.TrimSpace(front.Summary),
		Description: strings.TrimSpace(front.Description),
		Body:        template.HTML(rendered),
	}
	page.UpdatedAt = parseDate(front.UpdatedAt)
	if page.UpdatedAt.IsZero() {
		if info, err := os.Stat(file); err == nil {
			page.UpdatedAt = info.ModTime()
		}
	}
	if page.Title == "" {
		page.Title = prettifySlug(slug)
	}
	return page, nil
}

func (s *Store) cached(key string) (Page, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	entry, ok := s.cache[key]
	if !ok || time.Now().After(entry.expires) {
		return Page{}, false
	}
	return entry.page, true
}

func (s *Store) store(key string, page Page) {
	s.mu.Lock()
	s.cache[key] = cacheEntry{page: page, expires: time.Now().Add(s.ttl)}
	s.mu.Unlock()
}

func splitFrontMatter(input string) (string, string) {
	input = strings.TrimLeft(input, "\ufeff")
	lines := strings.Split(input, "\n")
	if len(lines) == 0 {
		return "", ""
	}
	if strings.TrimSpace(lines[0]) != "---" {
		return "", input
	}
	for i := 1; i < len(lines); i++ {
		if strings.TrimSpace(lines[i]) == "---" {
			fm := strings.Join(lines[1:i], "\n")
			body := strings.Join(lines[i+1:], "\n")
			return fm, strings.TrimLeft(body, "\n\r")
		}
	}
	return "", input
}

func parseDate(v string) time.Time {
	v = strings.TrimSpace(v)
	if v == "" {
		return time.Time{}
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02", "2006/01/02"} {
		if t, err := time.Parse(layout, v); err == nil {
			return t
		}
	}
	return time.Time{}
}

func prettifySlug(slug string) string {
	parts := strings.Split(slug, "-")
	for i, part := range parts {
		if part == "" {
			continue
		}
		runes := []rune(part)
		if runes[0] >= 'a' && runes[0] <= 'z' {
			runes[0] -= 'a' - 'A'
		}
		parts[i] = string(runes)
	}
	return strings.Join(parts, " ")
}

func sanitizeSlug(slug string) string {
	slug = strings.TrimSpace(strings.ToLower(slug))
	slug = strings.Trim(slug, "/")
	if slug == "" || strings.Contains(slug, "..") || strings.ContainsRune(slug, os.PathSeparator) {
		return ""
	}
	return slug
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
