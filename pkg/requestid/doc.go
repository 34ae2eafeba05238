// Package requestid assigns a correlation id to every HTTP request.
//
// Middleware keeps a client supplied X-Request-ID when it is at most 128
// characters of [A-Za-z0-9_-] and otherwise generates a UUIDv4. The id is
// stored in the request context (FromContext) and echoed in the response.
// LogExtractor plugs into logger.WithContextExtractors so that every
// *Context log call made while serving the request carries request_id.
package requestid
