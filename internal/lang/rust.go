package lang

import "github.com/grahambrooks/codemap/internal/model"

func init() {
	Register(&Spec{
		Language:   model.LanguageRust,
		Extensions: []string{".rs"},
		Rules: []KindRule{
			// Rust methods share function_item with free functions; the
			// policy here maps both to KindFunction at this layer and the
			// extractor promotes to KindMethod when an impl/trait/struct
			// ancestor is on the parent stack (spec.md §9 Open Question,
			// resolved — see DESIGN.md).
			{model.KindFunction, []string{"function_item", "function_signature_item"}},
			{model.KindStruct, []string{"struct_item"}},
			{model.KindEnum, []string{"enum_item"}},
			{model.KindTrait, []string{"trait_item"}},
			{model.KindTypeAlias, []string{"type_item"}},
			{model.KindImport, []string{"use_declaration", "extern_crate_declaration"}},
			{model.KindConstant, []string{"const_item", "static_item"}},
			{model.KindModule, []string{"source_file", "mod_item"}},
		},
		CallTypes: callSet("call_expression", "macro_invocation"),
	})
}
