package lang

import "github.com/grahambrooks/codemap/internal/model"

func init() {
	Register(&Spec{
		Language:   model.LanguageJava,
		Extensions: []string{".java"},
		Rules: []KindRule{
			{model.KindMethod, []string{"method_declaration", "constructor_declaration"}},
			{model.KindClass, []string{"class_declaration"}},
			{model.KindInterface, []string{"interface_declaration"}},
			{model.KindEnum, []string{"enum_declaration"}},
			{model.KindImport, []string{"import_declaration"}},
			{model.KindConstant, []string{"field_declaration"}},
			{model.KindModule, []string{"program"}},
		},
		CallTypes: callSet("method_invocation", "object_creation_expression"),
	})
}
