// Package pagination follows paginated wallhaven listings page by page.
//
// Wallhaven returns a fixed number of items per page and only reports the page
// count inside each response's meta block, so the number of pages is unknown
// until the first one has been fetched. The fetcher therefore works in two
// phases:
//
//   - Fetches page 1 and returns right away when it is empty or already
//     satisfies the limit
//   - Reads last_page from its meta and requests pages 2..last_page one after
//     another, pausing Config.Delay between requests
//   - Stops as soon as the limit is reached, trimming the final page
//   - Aborts on the first page error without returning partial results
//
// Example usage:
//
//	fetcher := pagination.NewFetcher[models.Wallpaper](pageFunc, pagination.DefaultConfig())
//	walls, err := fetcher.Fetch(ctx, 100)
//
// Requests are sequential.
package pagination
