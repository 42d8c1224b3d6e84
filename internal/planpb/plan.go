// Package planpb holds the protocol-buffer message types for the
// cross-engine relational-algebra plan the translator emits. The structs
// are written in the shape protoc-gen-gogo would generate so that
// github.com/gogo/protobuf/proto marshals them off their struct tags
// without a protoc invocation. Field numbers follow the upstream plan
// schema; oneof groups are flattened to sibling pointer fields carrying the
// oneof member's field number, which encodes to identical bytes (at most
// one member is ever set).
//
// Two deprecated fields are used deliberately: FetchRel.Offset/Count and
// Grouping.GroupingExpressions. Consumers of the emitted plan follow the
// older convention, so the newer OffsetMode/CountMode oneofs and the
// relation-level AggregateRel.GroupingExpressions stay empty.
package planpb

import "github.com/gogo/protobuf/proto"

// Nullability values for Type messages.
const (
	NullabilityUnspecified int32 = 0
	NullabilityNullable    int32 = 1
	NullabilityRequired    int32 = 2
)

// Sort direction values. Only ascending-nulls-first and
// descending-nulls-last are emitted; the intermediate values are reserved.
const (
	SortDirectionAscNullsFirst  int32 = 1
	SortDirectionAscNullsLast   int32 = 2
	SortDirectionDescNullsFirst int32 = 3
	SortDirectionDescNullsLast  int32 = 4
)

// Join type values.
const (
	JoinTypeInner     int32 = 1
	JoinTypeOuter     int32 = 2
	JoinTypeLeft      int32 = 3
	JoinTypeRight     int32 = 4
	JoinTypeLeftSemi  int32 = 5
	JoinTypeLeftAnti  int32 = 6
)

// Plan is the root message: a schema version, the extension declarations
// for every function the plan references, and exactly one root relation.
type Plan struct {
	ExtensionUris []*SimpleExtensionURI         `protobuf:"bytes,1,rep,name=extension_uris,json=extensionUris,proto3" json:"extension_uris,omitempty"`
	Extensions    []*SimpleExtensionDeclaration `protobuf:"bytes,2,rep,name=extensions,proto3" json:"extensions,omitempty"`
	Relations     []*PlanRel                    `protobuf:"bytes,3,rep,name=relations,proto3" json:"relations,omitempty"`
	Version       *Version                      `protobuf:"bytes,6,opt,name=version,proto3" json:"version,omitempty"`
}

func (m *Plan) Reset()         { *m = Plan{} }
func (m *Plan) String() string { return proto.CompactTextString(m) }
func (*Plan) ProtoMessage()    {}

// Version identifies the plan schema release the producer targeted.
type Version struct {
	MajorNumber uint32 `protobuf:"varint,1,opt,name=major_number,json=majorNumber,proto3" json:"major_number,omitempty"`
	MinorNumber uint32 `protobuf:"varint,2,opt,name=minor_number,json=minorNumber,proto3" json:"minor_number,omitempty"`
	PatchNumber uint32 `protobuf:"varint,3,opt,name=patch_number,json=patchNumber,proto3" json:"patch_number,omitempty"`
	Producer    string `protobuf:"bytes,5,opt,name=producer,proto3" json:"producer,omitempty"`
}

func (m *Version) Reset()         { *m = Version{} }
func (m *Version) String() string { return proto.CompactTextString(m) }
func (*Version) ProtoMessage()    {}

// SimpleExtensionURI anchors an extension definition file.
type SimpleExtensionURI struct {
	ExtensionUriAnchor uint32 `protobuf:"varint,1,opt,name=extension_uri_anchor,json=extensionUriAnchor,proto3" json:"extension_uri_anchor,omitempty"`
	Uri                string `protobuf:"bytes,2,opt,name=uri,proto3" json:"uri,omitempty"`
}

func (m *SimpleExtensionURI) Reset()         { *m = SimpleExtensionURI{} }
func (m *SimpleExtensionURI) String() string { return proto.CompactTextString(m) }
func (*SimpleExtensionURI) ProtoMessage()    {}

// SimpleExtensionDeclaration declares one extension mapping; only the
// function member is used here.
type SimpleExtensionDeclaration struct {
	ExtensionFunction *ExtensionFunction `protobuf:"bytes,3,opt,name=extension_function,json=extensionFunction,proto3" json:"extension_function,omitempty"`
}

func (m *SimpleExtensionDeclaration) Reset()         { *m = SimpleExtensionDeclaration{} }
func (m *SimpleExtensionDeclaration) String() string { return proto.CompactTextString(m) }
func (*SimpleExtensionDeclaration) ProtoMessage()    {}

// ExtensionFunction binds a function anchor to a name within an extension URI.
type ExtensionFunction struct {
	ExtensionUriReference uint32 `protobuf:"varint,1,opt,name=extension_uri_reference,json=extensionUriReference,proto3" json:"extension_uri_reference,omitempty"`
	FunctionAnchor        uint32 `protobuf:"varint,2,opt,name=function_anchor,json=functionAnchor,proto3" json:"function_anchor,omitempty"`
	Name                  string `protobuf:"bytes,3,opt,name=name,proto3" json:"name,omitempty"`
}

func (m *ExtensionFunction) Reset()         { *m = ExtensionFunction{} }
func (m *ExtensionFunction) String() string { return proto.CompactTextString(m) }
func (*ExtensionFunction) ProtoMessage()    {}

// PlanRel wraps a relation tree; only the root member is emitted.
type PlanRel struct {
	Root *RelRoot `protobuf:"bytes,2,opt,name=root,proto3" json:"root,omitempty"`
}

func (m *PlanRel) Reset()         { *m = PlanRel{} }
func (m *PlanRel) String() string { return proto.CompactTextString(m) }
func (*PlanRel) ProtoMessage()    {}

// RelRoot carries the plan's single relation and the final output column names.
type RelRoot struct {
	Input *Rel     `protobuf:"bytes,1,opt,name=input,proto3" json:"input,omitempty"`
	Names []string `protobuf:"bytes,2,rep,name=names,proto3" json:"names,omitempty"`
}

func (m *RelRoot) Reset()         { *m = RelRoot{} }
func (m *RelRoot) String() string { return proto.CompactTextString(m) }
func (*RelRoot) ProtoMessage()    {}

// Rel is the relation tagged union. At most one member is non-nil.
type Rel struct {
	Read      *ReadRel      `protobuf:"bytes,1,opt,name=read,proto3" json:"read,omitempty"`
	Filter    *FilterRel    `protobuf:"bytes,2,opt,name=filter,proto3" json:"filter,omitempty"`
	Fetch     *FetchRel     `protobuf:"bytes,3,opt,name=fetch,proto3" json:"fetch,omitempty"`
	Aggregate *AggregateRel `protobuf:"bytes,4,opt,name=aggregate,proto3" json:"aggregate,omitempty"`
	Sort      *SortRel      `protobuf:"bytes,5,opt,name=sort,proto3" json:"sort,omitempty"`
	Join      *JoinRel      `protobuf:"bytes,6,opt,name=join,proto3" json:"join,omitempty"`
	Project   *ProjectRel   `protobuf:"bytes,7,opt,name=project,proto3" json:"project,omitempty"`
}

func (m *Rel) Reset()         { *m = Rel{} }
func (m *Rel) String() string { return proto.CompactTextString(m) }
func (*Rel) ProtoMessage()    {}

// NamedTable names the scanned table.
type NamedTable struct {
	Names []string `protobuf:"bytes,1,rep,name=names,proto3" json:"names,omitempty"`
}

func (m *NamedTable) Reset()         { *m = NamedTable{} }
func (m *NamedTable) String() string { return proto.CompactTextString(m) }
func (*NamedTable) ProtoMessage()    {}

// ReadRel scans a named table. Projection, when set, is a struct mask
// restricting the read's output columns.
type ReadRel struct {
	BaseSchema *NamedStruct    `protobuf:"bytes,2,opt,name=base_schema,json=baseSchema,proto3" json:"base_schema,omitempty"`
	Projection *MaskExpression `protobuf:"bytes,4,opt,name=projection,proto3" json:"projection,omitempty"`
	NamedTable *NamedTable     `protobuf:"bytes,7,opt,name=named_table,json=namedTable,proto3" json:"named_table,omitempty"`
}

func (m *ReadRel) Reset()         { *m = ReadRel{} }
func (m *ReadRel) String() string { return proto.CompactTextString(m) }
func (*ReadRel) ProtoMessage()    {}

// MaskExpression selects a subset of a struct's fields.
type MaskExpression struct {
	Select                 *StructSelect `protobuf:"bytes,1,opt,name=select,proto3" json:"select,omitempty"`
	MaintainSingularStruct bool          `protobuf:"varint,2,opt,name=maintain_singular_struct,json=maintainSingularStruct,proto3" json:"maintain_singular_struct,omitempty"`
}

func (m *MaskExpression) Reset()         { *m = MaskExpression{} }
func (m *MaskExpression) String() string { return proto.CompactTextString(m) }
func (*MaskExpression) ProtoMessage()    {}

// StructSelect lists the selected field positions.
type StructSelect struct {
	StructItems []*StructItem `protobuf:"bytes,1,rep,name=struct_items,json=structItems,proto3" json:"struct_items,omitempty"`
}

func (m *StructSelect) Reset()         { *m = StructSelect{} }
func (m *StructSelect) String() string { return proto.CompactTextString(m) }
func (*StructSelect) ProtoMessage()    {}

// StructItem is one selected field position.
type StructItem struct {
	Field int32 `protobuf:"varint,1,opt,name=field,proto3" json:"field,omitempty"`
}

func (m *StructItem) Reset()         { *m = StructItem{} }
func (m *StructItem) String() string { return proto.CompactTextString(m) }
func (*StructItem) ProtoMessage()    {}

// FilterRel applies a boolean condition to its input.
type FilterRel struct {
	Input     *Rel        `protobuf:"bytes,2,opt,name=input,proto3" json:"input,omitempty"`
	Condition *Expression `protobuf:"bytes,3,opt,name=condition,proto3" json:"condition,omitempty"`
}

func (m *FilterRel) Reset()         { *m = FilterRel{} }
func (m *FilterRel) String() string { return proto.CompactTextString(m) }
func (*FilterRel) ProtoMessage()    {}

// FetchRel caps its input's row count. Offset and Count are the deprecated
// scalar fields; the newer mode oneofs are intentionally not modeled.
type FetchRel struct {
	Input  *Rel  `protobuf:"bytes,2,opt,name=input,proto3" json:"input,omitempty"`
	Offset int64 `protobuf:"varint,3,opt,name=offset,proto3" json:"offset,omitempty"` // Deprecated: kept for consumer compatibility.
	Count  int64 `protobuf:"varint,4,opt,name=count,proto3" json:"count,omitempty"`   // Deprecated: kept for consumer compatibility.
}

func (m *FetchRel) Reset()         { *m = FetchRel{} }
func (m *FetchRel) String() string { return proto.CompactTextString(m) }
func (*FetchRel) ProtoMessage()    {}

// Grouping is one grouping-set of an AggregateRel. GroupingExpressions is
// the deprecated inner expression list consumers still read.
type Grouping struct {
	GroupingExpressions  []*Expression `protobuf:"bytes,1,rep,name=grouping_expressions,json=groupingExpressions,proto3" json:"grouping_expressions,omitempty"` // Deprecated: kept for consumer compatibility.
	ExpressionReferences []uint32      `protobuf:"varint,2,rep,packed,name=expression_references,json=expressionReferences,proto3" json:"expression_references,omitempty"`
}

func (m *Grouping) Reset()         { *m = Grouping{} }
func (m *Grouping) String() string { return proto.CompactTextString(m) }
func (*Grouping) ProtoMessage()    {}

// Measure is one aggregate computation of an AggregateRel.
type Measure struct {
	Measure *AggregateFunction `protobuf:"bytes,1,opt,name=measure,proto3" json:"measure,omitempty"`
}

func (m *Measure) Reset()         { *m = Measure{} }
func (m *Measure) String() string { return proto.CompactTextString(m) }
func (*Measure) ProtoMessage()    {}

// AggregateRel groups and aggregates its input. The relation-level
// GroupingExpressions list stays empty; expressions live inside each
// Grouping instead.
type AggregateRel struct {
	Input               *Rel          `protobuf:"bytes,2,opt,name=input,proto3" json:"input,omitempty"`
	Groupings           []*Grouping   `protobuf:"bytes,3,rep,name=groupings,proto3" json:"groupings,omitempty"`
	Measures            []*Measure    `protobuf:"bytes,4,rep,name=measures,proto3" json:"measures,omitempty"`
	GroupingExpressions []*Expression `protobuf:"bytes,5,rep,name=grouping_expressions,json=groupingExpressions,proto3" json:"grouping_expressions,omitempty"`
}

func (m *AggregateRel) Reset()         { *m = AggregateRel{} }
func (m *AggregateRel) String() string { return proto.CompactTextString(m) }
func (*AggregateRel) ProtoMessage()    {}

// SortRel orders its input.
type SortRel struct {
	Input *Rel         `protobuf:"bytes,2,opt,name=input,proto3" json:"input,omitempty"`
	Sorts []*SortField `protobuf:"bytes,3,rep,name=sorts,proto3" json:"sorts,omitempty"`
}

func (m *SortRel) Reset()         { *m = SortRel{} }
func (m *SortRel) String() string { return proto.CompactTextString(m) }
func (*SortRel) ProtoMessage()    {}

// SortField is one ordering key with its direction.
type SortField struct {
	Expr      *Expression `protobuf:"bytes,1,opt,name=expr,proto3" json:"expr,omitempty"`
	Direction int32       `protobuf:"varint,2,opt,name=direction,proto3" json:"direction,omitempty"`
}

func (m *SortField) Reset()         { *m = SortField{} }
func (m *SortField) String() string { return proto.CompactTextString(m) }
func (*SortField) ProtoMessage()    {}

// JoinRel joins two inputs on an expression.
type JoinRel struct {
	Left       *Rel        `protobuf:"bytes,2,opt,name=left,proto3" json:"left,omitempty"`
	Right      *Rel        `protobuf:"bytes,3,opt,name=right,proto3" json:"right,omitempty"`
	Expression *Expression `protobuf:"bytes,4,opt,name=expression,proto3" json:"expression,omitempty"`
	Type       int32       `protobuf:"varint,6,opt,name=type,proto3" json:"type,omitempty"`
}

func (m *JoinRel) Reset()         { *m = JoinRel{} }
func (m *JoinRel) String() string { return proto.CompactTextString(m) }
func (*JoinRel) ProtoMessage()    {}

// ProjectRel computes an expression list over its input.
type ProjectRel struct {
	Input       *Rel          `protobuf:"bytes,2,opt,name=input,proto3" json:"input,omitempty"`
	Expressions []*Expression `protobuf:"bytes,3,rep,name=expressions,proto3" json:"expressions,omitempty"`
}

func (m *ProjectRel) Reset()         { *m = ProjectRel{} }
func (m *ProjectRel) String() string { return proto.CompactTextString(m) }
func (*ProjectRel) ProtoMessage()    {}

// Expression is the expression tagged union. At most one member is non-nil.
type Expression struct {
	Literal        *Literal        `protobuf:"bytes,1,opt,name=literal,proto3" json:"literal,omitempty"`
	Selection      *FieldReference `protobuf:"bytes,2,opt,name=selection,proto3" json:"selection,omitempty"`
	ScalarFunction *ScalarFunction `protobuf:"bytes,3,opt,name=scalar_function,json=scalarFunction,proto3" json:"scalar_function,omitempty"`
}

func (m *Expression) Reset()         { *m = Expression{} }
func (m *Expression) String() string { return proto.CompactTextString(m) }
func (*Expression) ProtoMessage()    {}

// Literal is a constant value. Members are pointers so that zero-valued
// literals (0, "", false) still encode explicitly.
type Literal struct {
	Boolean *bool    `protobuf:"varint,1,opt,name=boolean" json:"boolean,omitempty"`
	I32     *int32   `protobuf:"varint,5,opt,name=i32" json:"i32,omitempty"`
	I64     *int64   `protobuf:"varint,7,opt,name=i64" json:"i64,omitempty"`
	Fp64    *float64 `protobuf:"fixed64,11,opt,name=fp64" json:"fp64,omitempty"`
	Str     *string  `protobuf:"bytes,12,opt,name=string" json:"string,omitempty"`
	Null    *Type    `protobuf:"bytes,29,opt,name=null,proto3" json:"null,omitempty"`
}

func (m *Literal) Reset()         { *m = Literal{} }
func (m *Literal) String() string { return proto.CompactTextString(m) }
func (*Literal) ProtoMessage()    {}

// RootReference marks a field reference as rooted at the relation's input
// schema. It carries no fields; presence is the marker.
type RootReference struct{}

func (m *RootReference) Reset()         { *m = RootReference{} }
func (m *RootReference) String() string { return proto.CompactTextString(m) }
func (*RootReference) ProtoMessage()    {}

// FieldReference is a positional column reference. RootReference is set
// only where the consumer convention requires the explicit marker
// (grouping expressions and aggregate arguments).
type FieldReference struct {
	DirectReference *ReferenceSegment `protobuf:"bytes,1,opt,name=direct_reference,json=directReference,proto3" json:"direct_reference,omitempty"`
	RootReference   *RootReference    `protobuf:"bytes,4,opt,name=root_reference,json=rootReference,proto3" json:"root_reference,omitempty"`
}

func (m *FieldReference) Reset()         { *m = FieldReference{} }
func (m *FieldReference) String() string { return proto.CompactTextString(m) }
func (*FieldReference) ProtoMessage()    {}

// ReferenceSegment addresses one struct field by position.
type ReferenceSegment struct {
	StructField *StructFieldRef `protobuf:"bytes,2,opt,name=struct_field,json=structField,proto3" json:"struct_field,omitempty"`
}

func (m *ReferenceSegment) Reset()         { *m = ReferenceSegment{} }
func (m *ReferenceSegment) String() string { return proto.CompactTextString(m) }
func (*ReferenceSegment) ProtoMessage()    {}

// StructFieldRef is the positional index of a struct field.
type StructFieldRef struct {
	Field int32 `protobuf:"varint,1,opt,name=field,proto3" json:"field,omitempty"`
}

func (m *StructFieldRef) Reset()         { *m = StructFieldRef{} }
func (m *StructFieldRef) String() string { return proto.CompactTextString(m) }
func (*StructFieldRef) ProtoMessage()    {}

// FunctionArgument wraps one argument of a function invocation.
type FunctionArgument struct {
	Value *Expression `protobuf:"bytes,3,opt,name=value,proto3" json:"value,omitempty"`
}

func (m *FunctionArgument) Reset()         { *m = FunctionArgument{} }
func (m *FunctionArgument) String() string { return proto.CompactTextString(m) }
func (*FunctionArgument) ProtoMessage()    {}

// ScalarFunction invokes an extension function by anchor.
type ScalarFunction struct {
	FunctionReference uint32              `protobuf:"varint,1,opt,name=function_reference,json=functionReference,proto3" json:"function_reference,omitempty"`
	OutputType        *Type               `protobuf:"bytes,3,opt,name=output_type,json=outputType,proto3" json:"output_type,omitempty"`
	Arguments         []*FunctionArgument `protobuf:"bytes,4,rep,name=arguments,proto3" json:"arguments,omitempty"`
}

func (m *ScalarFunction) Reset()         { *m = ScalarFunction{} }
func (m *ScalarFunction) String() string { return proto.CompactTextString(m) }
func (*ScalarFunction) ProtoMessage()    {}

// AggregateFunction invokes an aggregate extension function by anchor.
type AggregateFunction struct {
	FunctionReference uint32              `protobuf:"varint,1,opt,name=function_reference,json=functionReference,proto3" json:"function_reference,omitempty"`
	Phase             int32               `protobuf:"varint,4,opt,name=phase,proto3" json:"phase,omitempty"`
	OutputType        *Type               `protobuf:"bytes,5,opt,name=output_type,json=outputType,proto3" json:"output_type,omitempty"`
	Invocation        int32               `protobuf:"varint,8,opt,name=invocation,proto3" json:"invocation,omitempty"`
	Arguments         []*FunctionArgument `protobuf:"bytes,9,rep,name=arguments,proto3" json:"arguments,omitempty"`
}

func (m *AggregateFunction) Reset()         { *m = AggregateFunction{} }
func (m *AggregateFunction) String() string { return proto.CompactTextString(m) }
func (*AggregateFunction) ProtoMessage()    {}

// NamedStruct pairs a struct type with its field names.
type NamedStruct struct {
	Names  []string    `protobuf:"bytes,1,rep,name=names,proto3" json:"names,omitempty"`
	Struct *StructType `protobuf:"bytes,2,opt,name=struct,proto3" json:"struct,omitempty"`
}

func (m *NamedStruct) Reset()         { *m = NamedStruct{} }
func (m *NamedStruct) String() string { return proto.CompactTextString(m) }
func (*NamedStruct) ProtoMessage()    {}

// StructType is an ordered list of member types.
type StructType struct {
	Types       []*Type `protobuf:"bytes,1,rep,name=types,proto3" json:"types,omitempty"`
	Nullability int32   `protobuf:"varint,3,opt,name=nullability,proto3" json:"nullability,omitempty"`
}

func (m *StructType) Reset()         { *m = StructType{} }
func (m *StructType) String() string { return proto.CompactTextString(m) }
func (*StructType) ProtoMessage()    {}

// Type is the type tagged union. At most one member is non-nil.
type Type struct {
	Bool   *ScalarKind `protobuf:"bytes,1,opt,name=bool,proto3" json:"bool,omitempty"`
	I32    *ScalarKind `protobuf:"bytes,5,opt,name=i32,proto3" json:"i32,omitempty"`
	I64    *ScalarKind `protobuf:"bytes,7,opt,name=i64,proto3" json:"i64,omitempty"`
	Fp32   *ScalarKind `protobuf:"bytes,10,opt,name=fp32,proto3" json:"fp32,omitempty"`
	Fp64   *ScalarKind `protobuf:"bytes,11,opt,name=fp64,proto3" json:"fp64,omitempty"`
	Str    *ScalarKind `protobuf:"bytes,12,opt,name=string,proto3" json:"string,omitempty"`
	Struct *StructType `protobuf:"bytes,25,opt,name=struct,proto3" json:"struct,omitempty"`
}

func (m *Type) Reset()         { *m = Type{} }
func (m *Type) String() string { return proto.CompactTextString(m) }
func (*Type) ProtoMessage()    {}

// ScalarKind is the common body of every primitive type member: just its
// nullability.
type ScalarKind struct {
	Nullability int32 `protobuf:"varint,2,opt,name=nullability,proto3" json:"nullability,omitempty"`
}

func (m *ScalarKind) Reset()         { *m = ScalarKind{} }
func (m *ScalarKind) String() string { return proto.CompactTextString(m) }
func (*ScalarKind) ProtoMessage()    {}

func init() {
	proto.RegisterType((*Plan)(nil), "mlql.plan.Plan")
	proto.RegisterType((*Version)(nil), "mlql.plan.Version")
	proto.RegisterType((*SimpleExtensionURI)(nil), "mlql.plan.SimpleExtensionURI")
	proto.RegisterType((*SimpleExtensionDeclaration)(nil), "mlql.plan.SimpleExtensionDeclaration")
	proto.RegisterType((*ExtensionFunction)(nil), "mlql.plan.ExtensionFunction")
	proto.RegisterType((*PlanRel)(nil), "mlql.plan.PlanRel")
	proto.RegisterType((*RelRoot)(nil), "mlql.plan.RelRoot")
	proto.RegisterType((*Rel)(nil), "mlql.plan.Rel")
	proto.RegisterType((*NamedTable)(nil), "mlql.plan.NamedTable")
	proto.RegisterType((*ReadRel)(nil), "mlql.plan.ReadRel")
	proto.RegisterType((*MaskExpression)(nil), "mlql.plan.MaskExpression")
	proto.RegisterType((*StructSelect)(nil), "mlql.plan.StructSelect")
	proto.RegisterType((*StructItem)(nil), "mlql.plan.StructItem")
	proto.RegisterType((*FilterRel)(nil), "mlql.plan.FilterRel")
	proto.RegisterType((*FetchRel)(nil), "mlql.plan.FetchRel")
	proto.RegisterType((*Grouping)(nil), "mlql.plan.Grouping")
	proto.RegisterType((*Measure)(nil), "mlql.plan.Measure")
	proto.RegisterType((*AggregateRel)(nil), "mlql.plan.AggregateRel")
	proto.RegisterType((*SortRel)(nil), "mlql.plan.SortRel")
	proto.RegisterType((*SortField)(nil), "mlql.plan.SortField")
	proto.RegisterType((*JoinRel)(nil), "mlql.plan.JoinRel")
	proto.RegisterType((*ProjectRel)(nil), "mlql.plan.ProjectRel")
	proto.RegisterType((*Expression)(nil), "mlql.plan.Expression")
	proto.RegisterType((*Literal)(nil), "mlql.plan.Literal")
	proto.RegisterType((*RootReference)(nil), "mlql.plan.RootReference")
	proto.RegisterType((*FieldReference)(nil), "mlql.plan.FieldReference")
	proto.RegisterType((*ReferenceSegment)(nil), "mlql.plan.ReferenceSegment")
	proto.RegisterType((*StructFieldRef)(nil), "mlql.plan.StructFieldRef")
	proto.RegisterType((*FunctionArgument)(nil), "mlql.plan.FunctionArgument")
	proto.RegisterType((*ScalarFunction)(nil), "mlql.plan.ScalarFunction")
	proto.RegisterType((*AggregateFunction)(nil), "mlql.plan.AggregateFunction")
	proto.RegisterType((*NamedStruct)(nil), "mlql.plan.NamedStruct")
	proto.RegisterType((*StructType)(nil), "mlql.plan.StructType")
	proto.RegisterType((*ScalarKind)(nil), "mlql.plan.ScalarKind")
}
