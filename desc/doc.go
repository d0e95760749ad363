// Package desc describes Go types for the korm mapping and formatting
// engines.
//
// [Of] returns the [Descriptor] of a type: its shape, its fields in
// declaration (or positional) order, and its documentation. Descriptors are
// built once per type from struct tags and [Define] calls and then cached.
//
// Struct fields are configured with the korm tag:
//
//	type Person struct {
//		desc.Meta `korm:"list='name,age' comment='A person.'"`
//		Name string `korm:"field=name"`
//		Age  int    `korm:"field=age,comment='In years.'"`
//		Tmp  int    `korm:"omit"`
//	}
//
// A Meta field (or a blank _ field) carries type level options: list makes
// the type positional and comment documents it. Field options are field=
// (the korm name), omit, inner (a pointer to an enclosing instance) and
// comment=. Multiple comment lines are separated by '|'.
package desc
