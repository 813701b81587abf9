// Package memofn provides typed arity wrappers over the memo core.
//
// UseI1 to UseI4 build the dependency snapshot from typed, comparable
// parameters and delegate to memo.Use. The comparable constraint gives the
// cache's comparison rule at compile time: pointers and channels compare by
// identity under ==, value types by value. Maps, slices and funcs do not
// satisfy comparable — a host gating on those passes them through the untyped
// memo.Snapshot surface, which compares them by identity.
//
// Like the memo core, these wrappers assume derive is pure.
package memofn
