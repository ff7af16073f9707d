// Package queries holds the GraphQL selection sets and operations sent to the
// platform. The catalog is data: field lists mirror the upstream schema one
// field per entry so they can be audited against it.
package queries

import "strings"

// Field is one entry of a selection set: a scalar (optionally with
// arguments), a nested object, or an inline fragment ("... on Type").
type Field struct {
	Name string
	Sub  []Field
}

// F builds a field. Passing sub fields makes it an object selection.
func F(name string, sub ...Field) Field {
	return Field{Name: name, Sub: sub}
}

// Scalars turns plain field names into a selection.
func Scalars(names ...string) []Field {
	fields := make([]Field, len(names))
	for i, n := range names {
		fields[i] = Field{Name: n}
	}
	return fields
}

// Join concatenates selections in order.
func Join(parts ...[]Field) []Field {
	var out []Field
	for _, p := range parts {
		out = append(out, p...)
	}
	return out
}

// Query is a named operation. Variables is the parenthesised declaration list
// and may be empty.
type Query struct {
	Name      string
	Variables string
	Selection []Field
}

func (q Query) String() string {
	var b strings.Builder
	b.WriteString("query ")
	b.WriteString(q.Name)
	b.WriteString(q.Variables)
	b.WriteString(" {\n")
	writeFields(&b, q.Selection, 1)
	b.WriteString("}\n")
	return b.String()
}

func writeFields(b *strings.Builder, fields []Field, depth int) {
	indent := strings.Repeat("    ", depth)
	for _, f := range fields {
		b.WriteString(indent)
		b.WriteString(f.Name)
		if len(f.Sub) == 0 {
			b.WriteString("\n")
			continue
		}
		b.WriteString(" {\n")
		writeFields(b, f.Sub, depth+1)
		b.WriteString(indent)
		b.WriteString("}\n")
	}
}
