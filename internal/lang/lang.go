// Package lang holds the per-language configuration that maps concrete
// tree-sitter node-type strings to the abstract model.Kind, identifies
// call sites, and records each language's file extensions.
//
// Adapted from the teacher's internal/lang registry (one file per
// language, Register()'d via init()), generalized to the ordered
// kind-family classifier spec.md §4.2 requires instead of the teacher's
// flat Function/Class/Module buckets.
package lang

import "github.com/grahambrooks/codemap/internal/model"

// KindRule pairs an abstract kind with the concrete tree-sitter node-type
// strings that classify to it for one language.
type KindRule struct {
	Kind  model.Kind
	Types []string
}

// Spec is a static, per-language mapping from concrete syntax to the
// abstract kind, plus the node types recognized as call sites.
//
// Rules is evaluated in order; the first rule whose Types set contains the
// concrete node kind wins. The registered languages do not list any
// concrete type under more than one rule, so for them the order of Rules
// does not change the result.
type Spec struct {
	Language   model.Language
	Extensions []string
	Rules      []KindRule
	CallTypes  map[string]bool
}

// Classify returns the abstract kind for a concrete tree-sitter node-type
// string, by the first matching rule. ok is false if no rule matches —
// the caller should recurse into children without emitting a symbol.
func (s *Spec) Classify(concreteType string) (k model.Kind, ok bool) {
	for _, rule := range s.Rules {
		for _, t := range rule.Types {
			if t == concreteType {
				return rule.Kind, true
			}
		}
	}
	return "", false
}

// IsCallSite reports whether a concrete node-type string is a call site
// for this language.
func (s *Spec) IsCallSite(concreteType string) bool {
	return s.CallTypes[concreteType]
}

var registry = map[string]*Spec{}
var byLanguage = map[model.Language]*Spec{}

// Register adds a Spec to the registry, keyed by every extension it
// claims.
func Register(s *Spec) {
	for _, ext := range s.Extensions {
		registry[ext] = s
	}
	byLanguage[s.Language] = s
}

// ForExtension returns the Spec for a file extension (e.g. ".go"), or nil
// if unsupported.
func ForExtension(ext string) *Spec {
	return registry[ext]
}

// ForLanguage returns the Spec for a model.Language, or nil if
// unsupported.
func ForLanguage(l model.Language) *Spec {
	return byLanguage[l]
}

func callSet(types ...string) map[string]bool {
	m := make(map[string]bool, len(types))
	for _, t := range types {
		m[t] = true
	}
	return m
}
