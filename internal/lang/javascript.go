package lang

import "github.com/grahambrooks/codemap/internal/model"

func init() {
	Register(&Spec{
		Language:   model.LanguageJavaScript,
		Extensions: []string{".js", ".mjs", ".cjs"},
		Rules: []KindRule{
			{model.KindFunction, []string{"function_declaration", "function_expression", "arrow_function", "generator_function_declaration"}},
			{model.KindMethod, []string{"method_definition"}},
			{model.KindClass, []string{"class_declaration"}},
			{model.KindImport, []string{"import_statement"}},
			{model.KindExport, []string{"export_statement"}},
			{model.KindConstant, []string{"lexical_declaration"}},
			{model.KindModule, []string{"program"}},
		},
		CallTypes: callSet("call_expression", "new_expression"),
	})
}
