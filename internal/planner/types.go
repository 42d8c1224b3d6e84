package planner

import (
	"strings"

	"github.com/mlql/mlql/internal/planpb"
	"github.com/mlql/mlql/internal/schema"
)

// namedStruct builds a Read's base schema from a provider table schema,
// honoring the provider's declared nullability.
func namedStruct(table *schema.TableSchema) *planpb.NamedStruct {
	types := make([]*planpb.Type, len(table.Columns))
	for i, col := range table.Columns {
		types[i] = mapSQLType(col.SQLType, col.Nullable)
	}
	return &planpb.NamedStruct{
		Names: table.ColumnNames(),
		Struct: &planpb.StructType{
			Types:       types,
			Nullability: planpb.NullabilityRequired,
		},
	}
}

// mapSQLType maps an engine SQL type string (case-insensitive) to a plan
// type. Unknown names default to string.
func mapSQLType(sqlType string, nullable bool) *planpb.Type {
	kind := &planpb.ScalarKind{Nullability: planpb.NullabilityRequired}
	if nullable {
		kind.Nullability = planpb.NullabilityNullable
	}

	switch strings.ToLower(strings.TrimSpace(sqlType)) {
	case "bigint", "int64", "hugeint", "long":
		return &planpb.Type{I64: kind}
	case "integer", "int", "int32", "smallint", "tinyint", "mediumint":
		return &planpb.Type{I32: kind}
	case "float", "float32", "real":
		return &planpb.Type{Fp32: kind}
	case "double", "float64", "decimal", "numeric":
		return &planpb.Type{Fp64: kind}
	case "boolean", "bool":
		return &planpb.Type{Bool: kind}
	default:
		// varchar, string, text, and anything unrecognized.
		return &planpb.Type{Str: kind}
	}
}
