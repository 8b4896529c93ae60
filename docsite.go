// Package docsite provides the core of a documentation-site toolkit.
// It loads structured text files into searchable documents, ranks them
// against free-text queries, caches the search index on the client side,
// and grounds an AI chat assistant in the site's content.
//
// This package contains domain types, interfaces and the pure search
// algorithms following Ben Johnson's Standard Package Layout.
// Implementations live in subdirectories named after their primary
// dependency (e.g., sqlite/, gemini/, http/).
package docsite
