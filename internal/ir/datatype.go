package ir

// TypeKind enumerates the DataType variants. Nullability is carried
// alongside a DataType on a schema Field, never inside the DataType itself.
type TypeKind string

const (
	TypeBool TypeKind = "Bool"

	TypeInt8  TypeKind = "Int8"
	TypeInt16 TypeKind = "Int16"
	TypeInt32 TypeKind = "Int32"
	TypeInt64 TypeKind = "Int64"

	TypeUint8  TypeKind = "Uint8"
	TypeUint16 TypeKind = "Uint16"
	TypeUint32 TypeKind = "Uint32"
	TypeUint64 TypeKind = "Uint64"

	TypeFloat32 TypeKind = "Float32"
	TypeFloat64 TypeKind = "Float64"
	TypeDecimal TypeKind = "Decimal"

	TypeString  TypeKind = "String"
	TypeVarchar TypeKind = "Varchar"

	TypeBytes TypeKind = "Bytes"

	TypeDate             TypeKind = "Date"
	TypeTime             TypeKind = "Time"
	TypeTimestampNaive   TypeKind = "TimestampNaive"
	TypeTimestampZoned   TypeKind = "TimestampZoned"
	TypeInterval         TypeKind = "Interval"

	TypeArray  TypeKind = "Array"
	TypeStruct TypeKind = "Struct"
	TypeMap    TypeKind = "Map"
	TypeVector TypeKind = "Vector"

	TypeNull    TypeKind = "Null"
	TypeUnknown TypeKind = "Unknown"
)

// DataType is a tagged variant describing the shape of a value, independent
// of nullability. Only the fields relevant to Kind are populated.
type DataType struct {
	Kind TypeKind

	// Decimal
	Precision int
	Scale     int

	// Varchar
	Length int

	// Array / composite element type
	Elem *DataType

	// Struct
	Fields []StructField

	// Map
	Key   *DataType
	Value *DataType

	// Vector
	Dimension int // 0 means unspecified
}

// StructField is a named, typed, nullable member of a Struct DataType.
type StructField struct {
	Name     string   `json:"name"`
	Type     DataType `json:"type"`
	Nullable bool     `json:"nullable"`
}

// dataTypeJSON is the wire shape for DataType: a discriminator plus the
// optional fields relevant to that discriminator. Absent optional fields
// are elided on serialization.
type dataTypeJSON struct {
	Kind      TypeKind      `json:"kind"`
	Precision int           `json:"precision,omitempty"`
	Scale     int           `json:"scale,omitempty"`
	Length    int           `json:"length,omitempty"`
	Elem      *DataType     `json:"elem,omitempty"`
	Fields    []StructField `json:"fields,omitempty"`
	Key       *DataType     `json:"key,omitempty"`
	Value     *DataType     `json:"value,omitempty"`
	Dimension int           `json:"dimension,omitempty"`
}

func (t DataType) MarshalJSON() ([]byte, error) {
	return marshalJSON(dataTypeJSON{
		Kind:      t.Kind,
		Precision: t.Precision,
		Scale:     t.Scale,
		Length:    t.Length,
		Elem:      t.Elem,
		Fields:    t.Fields,
		Key:       t.Key,
		Value:     t.Value,
		Dimension: t.Dimension,
	})
}

func (t *DataType) UnmarshalJSON(data []byte) error {
	var raw dataTypeJSON
	if err := unmarshalJSON(data, &raw); err != nil {
		return err
	}
	*t = DataType{
		Kind:      raw.Kind,
		Precision: raw.Precision,
		Scale:     raw.Scale,
		Length:    raw.Length,
		Elem:      raw.Elem,
		Fields:    raw.Fields,
		Key:       raw.Key,
		Value:     raw.Value,
		Dimension: raw.Dimension,
	}
	return nil
}

// SQLTypeName maps a DataType to an uppercase SQL-ish type spelling.
func (t DataType) SQLTypeName() string {
	switch t.Kind {
	case TypeBool:
		return "BOOLEAN"
	case TypeInt8, TypeInt16, TypeInt32:
		return "INTEGER"
	case TypeInt64:
		return "BIGINT"
	case TypeUint8, TypeUint16, TypeUint32, TypeUint64:
		return "INTEGER"
	case TypeFloat32:
		return "FLOAT"
	case TypeFloat64:
		return "DOUBLE"
	case TypeDecimal:
		return "DECIMAL"
	case TypeString:
		return "VARCHAR"
	case TypeVarchar:
		return "VARCHAR"
	case TypeBytes:
		return "BLOB"
	case TypeDate:
		return "DATE"
	case TypeTime:
		return "TIME"
	case TypeTimestampNaive, TypeTimestampZoned:
		return "TIMESTAMP"
	case TypeInterval:
		return "INTERVAL"
	case TypeVector:
		return "VECTOR"
	default:
		return "VARCHAR"
	}
}
