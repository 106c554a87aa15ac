// Package artifact locates the source files that define type definitions.
//
// An Index only answers substring queries over artifact names, so Resolve
// narrows its candidates with an exact, case-folded comparison of the file
// stem against the definition's simple name.
package artifact
