// Package client talks to the workbench's authentication provider.
//
// # Overview
//
//  1. Client is the transport-agnostic contract the auth controller depends
//     on: Login, Logout, CurrentUser and Ping.
//  2. HTTPClient implements it over the provider's JSON API (see package api):
//     every request carries an X-Request-ID and is bounded by a timeout.
//
// # Error Handling
//
// Callers match outcomes with errors.Is:
//
//   - ErrUnauthorized: the provider rejected the credentials.
//   - ErrSessionInvalid: the provider reports the token as no longer valid.
//   - ErrUnavailable: the provider could not be reached or failed (5xx).
//
// Anything else (for example an undecodable body) is returned wrapped.
package client
