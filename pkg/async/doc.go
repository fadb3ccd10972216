// Package async runs work in a goroutine and exposes its outcome as a Future.
//
// Session startup uses it for the profile fetch: the caller gets a Future
// immediately and may await it, poll it, or ignore it entirely. A Future can
// also be created already resolved with Resolved, so code paths that need no
// background work return the same type.
//
//	f := async.Async(ctx, token, fetchProfile)
//	user, err := f.AwaitContext(ctx)
//
// If ctx is cancelled before the function starts, the Future completes with
// the context error without calling it.
package async
