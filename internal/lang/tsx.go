package lang

import "github.com/grahambrooks/codemap/internal/model"

// TSX uses the same grammar family as TypeScript with JSX syntax enabled;
// the rule set is typescript.go's plus a component rule for
// jsx_element/jsx_self_closing_element.
func init() {
	Register(&Spec{
		Language:   model.LanguageTSX,
		Extensions: []string{".tsx"},
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
			{model.KindComponent, []string{"jsx_element", "jsx_self_closing_element"}},
		},
		CallTypes: callSet("call_expression", "new_expression"),
	})
}
