// Package block builds binary files from declarative schemas.
//
// # Overview
//
// A Schema is an ordered list of named fields. Each field has a Type and,
// optionally, a Producer that computes its value from other fields. Given a
// schema and a nested raw input mapping, a Block resolves every field on
// demand, memoizes the result and lays the fields out back to back in
// declaration order.
//
// Key features:
//   - Forward references: a producer may ask for the size or offset of a
//     field declared after it
//   - Lazy offsets: relative and absolute offsets are computed on request
//     and cached
//   - Cycle detection: a field whose resolution re-enters itself fails with
//     types.ErrKindCircular naming every field in the cycle
//   - Diagnostic traces: failures carry one frame per container or array
//     boundary they crossed
//
// # Basic Usage
//
//	level := block.MustSchema("Level",
//	    block.Field("level_id", block.U8),
//	    block.Field("setting", block.U8),
//	    block.Field("name_length", block.U8).WithProducer(func(b *block.Block, _ any) (any, error) {
//	        return b.SizeOf("name")
//	    }),
//	    block.Field("name", block.Bytes),
//	)
//
//	out, err := block.Build(level, map[string]any{
//	    "level_id": 3,
//	    "setting":  2,
//	    "name":     "Example Level",
//	}, nil)
//	// out = 03 02 0e "Example Level" 00
//
// # Types
//
// Integers are fixed-width and big-endian: U8, U16, U32, U64 and I8 through
// I64. Bytes, Text, File, Empty and Custom produce byte sequences. ArrayOf
// repeats a type once per item of the input sequence. Align pads with zeros
// to a multiple of an integer width, measured from the start of the root.
// A *Schema used as a field type nests a container inline.
//
// # Offsets
//
// OffsetOf is relative to the enclosing block; GlobalOffsetOf is relative to
// the root. Both size the preceding fields, resolving only those whose types
// have no static size, which lets a header field point at a later field:
//
//	block.Field("data_offset", block.U16).WithProducer(func(b *block.Block, _ any) (any, error) {
//	    return b.GlobalOffsetOf("data")
//	})
//
// SizeOf always resolves the field it names, so two fields whose producers
// ask for each other's size fail with a circular dependency.
//
// # Errors
//
// Every failure is a *types.Error. Its message is never rewritten as it
// unwinds; instead frames such as "Level -> header" and
// "Array[U16] -> (element 2)" are recorded and returned root-first by
// Trace. Within one container the frame names the field where the failure
// started.
//
// # Thread Safety
//
// Schemas may be shared between goroutines once built. A Block and its
// children belong to a single build and must not be used concurrently.
package block
