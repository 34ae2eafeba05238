// Package fetcher provides the network side of incognito.FetchCached: an
// http.Client based implementation of the incognito.Fetcher interface.
//
// The fetcher is stateless on purpose for private browsing. It carries no
// cookie jar, sends no credentials and keeps nothing between calls; caching is
// the session's job. Only http and https URLs are accepted, non-2xx responses
// become *StatusError, and bodies above MaxBodyBytes are rejected rather than
// truncated. Request deadlines come from Config.Timeout and from the caller's
// context, whichever is shorter.
//
// Config.RequireHTTPS and Config.BlockedTLDs reject URLs with ErrUnsafeURL
// before any request is sent. Both are off by default.
//
// # Usage
//
//	f := fetcher.New(fetcher.DefaultConfig())
//	facade := incognito.NewFacade(manager, f)
package fetcher
