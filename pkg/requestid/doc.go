// Package requestid tags outgoing API requests with a correlation id.
//
// Transport wraps an http.RoundTripper and sets the "X-Request-ID" header on
// every request. The id is taken from the request context when one was
// attached with WithContext, otherwise a new UUIDv4 is generated. The same id
// can be added to log records with LoggerExtractor, so client logs line up
// with the server's access logs.
//
//	client := &http.Client{Transport: requestid.Transport(http.DefaultTransport)}
//	log := logger.New(logger.WithContextExtractors(requestid.LoggerExtractor()))
package requestid
