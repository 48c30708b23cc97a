// Package schemafile declares block schemas in HCL.
//
// # File Layout
//
// A schema file holds one block per container type and an optional root
// attribute naming the type to build (default: the last block declared):
//
//	root = "Level"
//
//	block "Level" {
//	  field "level_id"    { type = "u8" }
//	  field "setting"     { type = "u8" }
//	  field "name_length" {
//	    type  = "u8"
//	    value = size("name")
//	  }
//	  field "name" { type = "bytes" }
//	}
//
// # Types
//
// Type strings are u8, u16, u32, u64, i8, i16, i32, i64, bytes, file,
// empty, text(<encoding>), array(<type>), align(<width or integer type>) or
// the name of another block. Types added with Parser.Register may be used
// by name as well. Blocks may not reference each other in a cycle.
//
// # Producers
//
// A value expression turns a field into a computed one. It is evaluated
// lazily, when the field is first needed, with:
//
//   - input: the field's raw input entry (null when absent)
//   - size(ref), offset(ref), global_offset(ref), int(ref), count(ref),
//     has(ref): queries on other fields
//   - min, max, abs, ceil, floor, upper, lower, format, length, concat
//
// A ref is a field name in the same block, "../name" for a field of the
// enclosing block, or "child.name" for a field of a nested block.
package schemafile
