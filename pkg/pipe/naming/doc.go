// Package naming renders human readable names for stages, placeholder
// expressions and their arguments. Names are thunks: they are computed
// when asked for and never cached, so building a long pipe costs nothing
// until something prints it.
package naming
