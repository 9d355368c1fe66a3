package sqlgen

import (
	"fmt"
	"io"
	"strings"

	"github.com/dave/jennifer/jen"

	"github.com/andrewkroh/go-agenda/agendasql"
)

const generatedHeader = "Code generated by gensql. DO NOT EDIT."

// EmitTablesGo renders the schema registry Go file for tables, which must
// already be in dependency order. The file declares a <Name>Table constant
// and a <Name>Schema variable per table, plus TableSchemas.
func EmitTablesGo(w io.Writer, pkgName string, tables []*TableDef) error {
	f := jen.NewFile(pkgName)
	f.HeaderComment(generatedHeader)

	f.Comment("Table names.")
	f.Const().DefsFunc(func(g *jen.Group) {
		for _, td := range tables {
			g.Id(GoName(td.Name) + "Table").Op("=").Lit(td.Name)
		}
	})

	for _, td := range tables {
		name := GoName(td.Name) + "Schema"
		if td.Comment != "" {
			f.Commentf("%s describes the %s table: %s", name, td.Name, td.Comment)
		} else {
			f.Commentf("%s describes the %s table.", name, td.Name)
		}
		f.Var().Id(name).Op("=").Id("Schema").Values(jen.Dict{
			jen.Id("Columns"):     columnsCode(td.Schema.Columns),
			jen.Id("Constraints"): constraintsCode(td.Schema.Constraints),
		})
	}

	f.Comment("TableSchemas returns every table in dependency order.")
	f.Func().Id("TableSchemas").Params().Index().Id("TableSchema").Block(
		jen.Return(jen.Index().Id("TableSchema").ValuesFunc(func(g *jen.Group) {
			for _, td := range tables {
				g.Line().Values(jen.Dict{
					jen.Id("Name"):   jen.Id(GoName(td.Name) + "Table"),
					jen.Id("Schema"): jen.Id(GoName(td.Name) + "Schema"),
				})
			}
			g.Line()
		})),
	)

	if err := f.Render(w); err != nil {
		return fmt.Errorf("rendering %s tables: %w", pkgName, err)
	}
	return nil
}

func columnsCode(columns []agendasql.Column) *jen.Statement {
	return jen.Index().Id("Column").ValuesFunc(func(g *jen.Group) {
		for _, c := range columns {
			g.Line().Values(jen.Dict{
				jen.Id("Name"): jen.Lit(c.Name),
				jen.Id("Type"): jen.Lit(c.Type),
			})
		}
		g.Line()
	})
}

func constraintsCode(constraints []string) *jen.Statement {
	return jen.Index().String().ValuesFunc(func(g *jen.Group) {
		for _, c := range constraints {
			g.Lit(c)
		}
	})
}

// SchemaSQL renders schema.sql: one CREATE TABLE statement per table, built
// with the same renderer the table handles execute at open time.
func SchemaSQL(tables []*TableDef) string {
	var b strings.Builder
	b.WriteString("-- " + generatedHeader + "\n")
	for _, td := range tables {
		b.WriteString("\n")
		if td.Comment != "" {
			b.WriteString("-- " + td.Name + ": " + td.Comment + "\n")
		}
		b.WriteString(agendasql.CreateTableSQL(td.Name, td.Schema) + ";\n")
	}
	return b.String()
}
