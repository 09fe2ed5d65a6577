// Package services contains the workbench client's application services.
//
// AuthController owns the authentication state. It bootstraps from the
// local session store, performs sign-in and sign-out against the
// authentication provider, and revalidates a restored session in the
// background. Every transition goes through the pure Reduce function;
// front ends read state with Snapshot and watch it with Subscribe.
package services
