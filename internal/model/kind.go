package model

// Kind is the abstract classification of a declaration or container.
type Kind string

const (
	KindFile        Kind = "file"
	KindModule      Kind = "module"
	KindClass       Kind = "class"
	KindStruct      Kind = "struct"
	KindInterface   Kind = "interface"
	KindTrait       Kind = "trait"
	KindProtocol    Kind = "protocol"
	KindFunction    Kind = "function"
	KindMethod      Kind = "method"
	KindProperty    Kind = "property"
	KindField       Kind = "field"
	KindVariable    Kind = "variable"
	KindConstant    Kind = "constant"
	KindEnum        Kind = "enum"
	KindEnumMember  Kind = "enum_member"
	KindTypeAlias   Kind = "type_alias"
	KindNamespace   Kind = "namespace"
	KindParameter   Kind = "parameter"
	KindImport      Kind = "import"
	KindExport      Kind = "export"
	KindRoute       Kind = "route"
	KindComponent   Kind = "component"
)

// ValidKinds lists every kind the store round-trips through its string
// encoding. Used by tests and by store schema validation.
var ValidKinds = []Kind{
	KindFile, KindModule, KindClass, KindStruct, KindInterface, KindTrait,
	KindProtocol, KindFunction, KindMethod, KindProperty, KindField,
	KindVariable, KindConstant, KindEnum, KindEnumMember, KindTypeAlias,
	KindNamespace, KindParameter, KindImport, KindExport, KindRoute,
	KindComponent,
}

// containerKinds are the kinds whose presence on the parent stack promotes
// an enclosed function to a method (see SPEC_FULL.md / DESIGN.md Open
// Question: method vs. free function).
var containerKinds = map[Kind]bool{
	KindClass:     true,
	KindStruct:    true,
	KindInterface: true,
	KindTrait:     true,
	KindProtocol:  true,
}

// IsContainer reports whether a node of this kind can hold methods — used
// by the extractor to recover method-ness for languages whose grammar
// conflates methods and free functions under one concrete node type.
func IsContainer(k Kind) bool {
	return containerKinds[k]
}
