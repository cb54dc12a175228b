// Package query builds parameters for the wallhaven search endpoint.
//
// Filters are held by a Builder and serialized on demand. Most options map to
// their own request parameter; tag, uploader, file type, similarity and exact
// tag filters are packed into the single q parameter, which the API reads by
// prefix and position:
//
//	b := query.New()
//	_ = b.SetSorting("toplist")
//	_ = b.SetRange("Last Week")
//	_ = b.ExcludeTags("cat")
//	_ = b.IncludeTags("dog")
//	_ = b.FilterByUser("bob")
//	b.Query() // "-cat+dog @bob"
//
// Free text can be parsed into the same filters with SetSearchQuery, which
// replaces whatever filters were set before.
package query
