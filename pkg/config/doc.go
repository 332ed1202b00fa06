// Package config interprets noise configuration files.
//
// A configuration is a line-oriented stream of named layer stacks:
//
//	/ comments start with a slash
//	lines
//	Line 0 0 0 0 100 1 1.0 10 12 1
//	Blur 0.01
//
//	blob
//	Blob 0 0 0 0 60 1 0.8 50 50 20 30
//
// Each line is one of:
//
//   - a comment (leading "/"), ignored
//   - a blank line, which flushes the current stack: the stack is run over the
//     input and then cleared for the next block
//   - a single token, which sets the current stack name used for output naming
//   - a layer directive: Line, Blob, Sin or Blur followed by positional
//     parameters
//
// Layer directives share a common prefix:
//
//	Kind radius_x radius_y x_lim y_lim density black intensity
//	Line <prefix> start end horizontal [use_memory]
//	Blob <prefix> point_x point_y radius_a radius_b [use_memory]
//	Sin  <prefix> start shift amplitude period horizontal [use_memory]
//	Blur intensity
//
// Booleans are "0" for false and any other token for true. Malformed
// directives produce a [Warning] and are skipped; they never abort a run.
//
// [Interpreter] streams a configuration and calls a [FlushFunc] at every
// flush. [Parse] collects the whole stream into a [Table] for tools that need
// every stack at once.
package config
