// Package api exposes an incognito.Facade as a JSON HTTP service.
//
// Routes:
//
//	POST   /sessions                      201 {"id"}
//	GET    /sessions/{id}                 200 session stats
//	DELETE /sessions/{id}                 204, also for unknown ids
//	PUT    /sessions/{id}/cookies/{name}  204, body {"value"}
//	GET    /sessions/{id}/cookies/{name}  200 {"name","value"}
//	DELETE /sessions/{id}/cookies         204
//	PUT    /sessions/{id}/data/{key}      204, body {"value": any JSON}
//	GET    /sessions/{id}/data/{key}      200 {"key","value"}
//	DELETE /sessions/{id}/data            204
//	GET    /sessions/{id}/history         200 {"urls"}
//	DELETE /sessions/{id}/history         204
//	POST   /sessions/{id}/fetch           200 raw body, body {"url"}
//	GET    /healthz, /readyz
//
// JSON responses share one envelope, {"code","data","error":{"code","message"}}.
// An unknown session yields 404 session_not_found and a missing or expired
// cookie yields 404 cookie_not_found. A missing data key yields 404
// data_not_found. A failed fetch yields 502 fetch_failed and a URL rejected
// by the fetcher's safety policy yields 403 unsafe_url.
// A fetch response carries X-Incognito-Cache set to hit, miss or uncacheable.
//
// WithSessionLimiter bounds how fast one peer can open sessions; excess
// requests get 429 rate_limited.
//
// Access logs record the route pattern, never the concrete path.
package api
