package lang

import "github.com/grahambrooks/codemap/internal/model"

// JSX is tracked as its own model.Language (spec.md §4.2 lists it distinct
// from plain JavaScript). It shares JavaScript's grammar and rules, plus a
// component rule for jsx_element/jsx_self_closing_element.
func init() {
	Register(&Spec{
		Language:   model.LanguageJSX,
		Extensions: []string{".jsx"},
		Rules: []KindRule{
			{model.KindFunction, []string{"function_declaration", "function_expression", "arrow_function", "generator_function_declaration"}},
			{model.KindMethod, []string{"method_definition"}},
			{model.KindClass, []string{"class_declaration"}},
			{model.KindImport, []string{"import_statement"}},
			{model.KindExport, []string{"export_statement"}},
			{model.KindConstant, []string{"lexical_declaration"}},
			{model.KindModule, []string{"program"}},
			{model.KindComponent, []string{"jsx_element", "jsx_self_closing_element"}},
		},
		CallTypes: callSet("call_expression", "new_expression"),
	})
}
