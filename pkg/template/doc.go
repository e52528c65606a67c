// Package template expands page templates against a JSON-shaped data context.
//
// A Template is an ordered list of content Sections plus an SEOPattern.
// Rendering produces the concatenated section content and an SEO value
// (title, description, keywords and structured-data objects).
//
// # Directives
//
// Interpolation:
//   - {{ path }} - Value at a dot-separated path, e.g. {{listing.city.name}}
//   - {{ items.0 }} - Array members are addressed by index
//
// Numbers and booleans render in their plain textual form. Arrays render
// comma-joined and objects render as "[object Object]". A directive whose
// path does not resolve is left in the output exactly as written.
//
// Loops:
//   - {{#each path}}body{{/each}} - Body once per array element
//   - {{this}} - The current element, when it is a string, number or boolean
//   - {{../name}} - name resolved against the context outside the loop
//
// A non-array (or missing) path expands to nothing. Loops do not nest:
// the first {{/each}} closes the block.
//
// Conditionals:
//   - {{#if path}}body{{/if}} - Body when the value is truthy
//
// Truthy means present, non-null, non-zero, non-empty string and not
// false. There is no else branch.
//
// # Loop Scope
//
// Inside a loop body only {{this}} and {{../name}} refer to the loop.
// Every other directive is evaluated against the outer context, so an
// {{#if}} inside an {{#each}} gives the same result on each iteration.
//
// # Section Guards
//
// A Section may carry a Condition that decides whether it renders at all:
//   - equals - field strictly equals value
//   - includes - field is an array containing value
//   - gt - field is a number greater than value
//   - exists - field is present and not null
//   - expr - value is an expr-lang expression over the context
//
// # Errors
//
// Missing data never fails a render. Unbalanced block directives are
// kept as literal text. The only render error is ErrTemplateNotFound.
//
// No escaping is performed. Callers embedding output in HTML must make
// sure untrusted context values are safe.
package template
