package planner

import "github.com/mlql/mlql/internal/schema"

func testProvider() *schema.MockProvider {
	p := schema.NewMockProvider()
	p.AddTable("users", []schema.ColumnSchema{
		{Name: "id", SQLType: "INTEGER", Nullable: false},
		{Name: "name", SQLType: "VARCHAR", Nullable: true},
		{Name: "age", SQLType: "INTEGER", Nullable: true},
	})
	p.AddTable("orders", []schema.ColumnSchema{
		{Name: "id", SQLType: "INTEGER", Nullable: false},
		{Name: "city", SQLType: "VARCHAR", Nullable: true},
		{Name: "amount", SQLType: "DOUBLE", Nullable: true},
	})
	p.AddTable("sales", []schema.ColumnSchema{
		{Name: "product", SQLType: "VARCHAR", Nullable: true},
		{Name: "price", SQLType: "DOUBLE", Nullable: true},
		{Name: "qty", SQLType: "INTEGER", Nullable: true},
	})
	p.AddTable("purchases", []schema.ColumnSchema{
		{Name: "order_id", SQLType: "INTEGER", Nullable: false},
		{Name: "user_id", SQLType: "INTEGER", Nullable: false},
		{Name: "amount", SQLType: "DOUBLE", Nullable: true},
	})
	return p
}
