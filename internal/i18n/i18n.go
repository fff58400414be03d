package i18n

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/text/language"
)

// Bundle holds the translation dictionaries for the supported locales.
// Locale documents are JSON; nested objects are flattened into dot-path keys
// at load time ("header.nav.tienda").
type Bundle struct {
	dict     map[string]map[string]string
	fallback string
	order    []string
	matcher  language.Matcher
}

// Load reads `{locale}.json` for every supported locale under dir. The
// fallback locale must load; a missing or unparsable document for any other
// locale degrades to an empty mapping.
func Load(dir string, fallback string, supported []string) (*Bundle, error) {
	if len(supported) == 0 {
		supported = []string{"es", "en"}
	}
	b := &Bundle{
		dict:     map[string]map[string]string{},
		fallback: fallback,
	}

	tags := make([]language.Tag, 0, len(supported)+1)
	seen := map[string]struct{}{}
	// The fallback goes first so the matcher prefers it on ties.
	for _, l := range append([]string{fallback}, supported...) {
		if _, ok := seen[l]; ok {
			continue
		}
		seen[l] = struct{}{}
		b.order = append(b.order, l)
		tags = append(tags, language.Make(l))

		raw, err := os.ReadFile(filepath.Join(dir, l+".json"))
		if err != nil {
			if l == fallback {
				return nil, fmt.Errorf("load locale %s: %w", l, err)
			}
			b.dict[l] = map[string]string{}
			continue
		}
		var doc map[string]any
		if err := json.Unmarshal(raw, &doc); err != nil {
			if l == fallback {
				return nil, fmt.Errorf("unmarshal %s: %w", l, err)
			}
			b.dict[l] = map[string]string{}
			continue
		}
		flat := map[string]string{}
		flatten("", doc, flat)
		b.dict[l] = flat
	}
	if len(b.dict[fallback]) == 0 {
		return nil, fmt.Errorf("fallback locale %s not loaded", fallback)
	}
	b.matcher = language.NewMatcher(tags)
	return b, nil
}

func flatten(prefix string, node map[string]any, out map[string]string) {
	for k, v := range node {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}
		switch val := v.(type) {
		case string:
			out[key] = val
		case map[string]any:
			flatten(key, val, out)
		}
	}
}

// Supported returns the supported locales, sorted.
func (b *Bundle) Supported() []string {
	out := make([]string, len(b.order))
	copy(out, b.order)
	sort.Strings(out)
	return out
}

// Fallback returns the default locale.
func (b *Bundle) Fallback() string { return b.fallback }

// IsSupported reports whether lang is one of the loaded locales.
func (b *Bundle) IsSupported(lang string) bool {
	_, ok := b.dict[lang]
	return ok
}

// T returns the translation for key in lang, falling back to the default
// locale and finally the key itself so templates keep their own default copy.
func (b *Bundle) T(lang, key string) string {
	if lang != "" {
		if v, ok := b.dict[lang][key]; ok && v != "" {
			return v
		}
	}
	if v, ok := b.dict[b.fallback][key]; ok && v != "" {
		return v
	}
	return key
}

// Resolve chooses the best supported locale for an Accept-Language header.
func (b *Bundle) Resolve(acceptLang string) string {
	if strings.TrimSpace(acceptLang) == "" {
		return b.fallback
	}
	desired, _, _ := language.ParseAcceptLanguage(acceptLang)
	_, idx, conf := b.matcher.Match(desired...)
	if conf == language.No || idx < 0 || idx >= len(b.order) {
		return b.fallback
	}
	return b.order[idx]
}

// Toggle flips between the two supported locales. With more than two loaded
// it advances to the next one in load order.
func (b *Bundle) Toggle(current string) string {
	if !b.IsSupported(current) {
		current = b.fallback
	}
	for i, l := range b.order {
		if l == current {
			return b.order[(i+1)%len(b.order)]
		}
	}
	return b.fallback
}
