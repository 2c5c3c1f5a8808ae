// Package server serves a generated reference site with a small set of
// function routes in front of the static files.
package server

import (
	"net/http"
	"sort"
	"strings"

	"github.com/gobwas/glob"
)

// Routes maps a path pattern to its handler. A pattern is either an exact
// path, a "prefix/*" wildcard or any other pattern using "*" as a wildcard.
type Routes map[string]http.Handler

type wildcard struct {
	pattern string
	score   int
	handler http.Handler
	match   func(path string) bool
}

// Middleware dispatches requests whose path matches a route and hands the
// rest to next. An exact pattern always beats a wildcard; among matching
// wildcards the one with the longest literal text wins, ties going to the
// lexically smaller pattern.
func Middleware(routes Routes, next http.Handler) http.Handler {
	exact := make(map[string]http.Handler)
	var wildcards []wildcard

	for pattern, h := range routes {
		if !strings.Contains(pattern, "*") {
			exact[pattern] = h
			continue
		}
		match := compile(pattern)
		if match == nil {
			continue
		}
		wildcards = append(wildcards, wildcard{
			pattern: pattern,
			score:   len(strings.ReplaceAll(pattern, "*", "")),
			handler: h,
			match:   match,
		})
	}

	sort.Slice(wildcards, func(i, j int) bool {
		if wildcards[i].score != wildcards[j].score {
			return wildcards[i].score > wildcards[j].score
		}
		return wildcards[i].pattern < wildcards[j].pattern
	})

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path := r.URL.Path
		if h, ok := exact[path]; ok {
			h.ServeHTTP(w, r)
			return
		}
		for _, wc := range wildcards {
			if wc.match(path) {
				wc.handler.ServeHTTP(w, r)
				return
			}
		}
		next.ServeHTTP(w, r)
	})
}

// compile returns the matcher for a wildcard pattern, or nil if the pattern
// cannot be compiled.
func compile(pattern string) func(string) bool {
	if base, ok := strings.CutSuffix(pattern, "/*"); ok {
		prefix := base + "/"
		return func(path string) bool {
			return strings.HasPrefix(path, prefix) || path == base
		}
	}

	parts := strings.Split(pattern, "*")
	for i, p := range parts {
		parts[i] = glob.QuoteMeta(p)
	}
	g, err := glob.Compile(strings.Join(parts, "*"))
	if err != nil {
		return nil
	}
	return g.Match
}
