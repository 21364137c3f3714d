package lang

import "github.com/grahambrooks/codemap/internal/model"

func init() {
	Register(&Spec{
		Language:   model.LanguageTypeScript,
		Extensions: []string{".ts"},
		Rules: []KindRule{
			{model.KindFunction, []string{"function_declaration", "function_expression", "arrow_function", "generator_function_declaration"}},
			{model.KindMethod, []string{"method_definition", "method_signature"}},
			{model.KindClass, []string{"class_declaration", "abstract_class_declaration"}},
			{model.KindInterface, []string{"interface_declaration"}},
			{model.KindEnum, []string{"enum_declaration"}},
			{model.KindImport, []string{"import_statement", "import_alias"}},
			{model.KindExport, []string{"export_statement"}},
			{model.KindTypeAlias, []string{"type_alias_declaration"}},
			{model.KindConstant, []string{"lexical_declaration"}},
			{model.KindModule, []string{"program", "module", "internal_module"}},
			{model.KindNamespace, []string{"namespace_declaration"}},
		},
		CallTypes: callSet("call_expression", "new_expression"),
	})
}
