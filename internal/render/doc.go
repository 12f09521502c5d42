// Package render turns story data into a complete HTML book document.
//
// The document renderer builds a view model from the supplied story
// (paragraph filtering, divider placement, page-number labels) and executes
// an html/template document template over it. Chapter content is split into
// paragraphs on newline characters by default; an optional ContentConverter
// (Goldmark) renders it as Markdown instead.
//
// Rendering is a single pure pass: no clock, no randomness, no shared state.
// The same story data always yields byte-identical output.
package render
