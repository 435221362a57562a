// Package product provides the HTTP client for the remote product catalog
// API, the Product record type, and the failure taxonomy the rest of the
// application relies on.
//
// # Overview
//
// The package is the application's only network surface. Everything above it
// (store, form, views) works with plain Product values and classified
// *APIError failures; nothing else touches HTTP.
//
// # Architecture
//
// The package is split by concern:
//
//   - model.go: the Product wire type and the id-stripped update payload
//   - client.go: HTTP client, request plumbing, Accessor interface
//   - envelope.go: tolerant decoding of the API's response envelopes
//   - errors.go: classification of failures into APIError kinds
//
// # Endpoints
//
//   - GET    /bp/products                    list all records
//   - GET    /bp/products/{id}               fetch one record
//   - POST   /bp/products                    create a record
//   - PUT    /bp/products/{id}               update a record (id not in body)
//   - DELETE /bp/products/{id}               delete a record
//   - GET    /bp/products/verification/{id}  id existence check (bare bool)
//
// # Response Envelopes
//
// The API is not consistent about envelopes, so decoding is deliberately
// tolerant. List responses may be a bare array, a {"data": [...]} wrapper,
// or some other object holding an array; extractList walks a fixed fallback
// chain and treats null as empty. Single-record responses may be a bare
// object or a {"message", "data"} wrapper. The chain is bounded: a response
// matching none of the shapes is a malformed-response error, never a guess.
//
// # Error Classification
//
// Failures are pre-classified by cause so the UI can show a stable message
// per class:
//
//   - KindConnectivity: transport failure, no HTTP status
//   - KindMalformed: response arrived but could not be decoded
//   - KindValidation: 400, with per-field detail when the body carries any
//   - KindNotFound: 404
//   - KindServerFault: 5xx
//   - KindUnknown: everything else
//
// # Thread Safety
//
// The Client struct is safe for concurrent use. The underlying http.Client
// handles connection pooling and concurrent requests internally.
package product
