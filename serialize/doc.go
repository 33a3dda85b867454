// Package serialize encodes and decodes a graph.Graph's structural
// state: node kinds, parent ids, metadata, constant values,
// constraints, and horizon. It never encodes compiled bytecode - a
// decoded graph must be recompiled before first evaluation.
//
// The wire format is gob: this is a Go-to-Go structural byte stream
// with no cross-language interoperability requirement, which is
// exactly what encoding/gob is for; no example in this codebase's
// pack ships a serialization library to imitate instead.
//
// Decoding replays the encoded node list through the same
// constructor methods (AddConstant, AddBinary, ...) a live graph
// would have used, in the same order they were originally added;
// since graph.Graph assigns logical ids by append order, this
// reconstructs identical ids without needing any id-remapping step.
package serialize
