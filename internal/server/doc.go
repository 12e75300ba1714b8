// Package server runs the temporary HTTP server used by the authorization code login.
//
// # Router Infrastructure
//
// The [Router] interface defines HTTP routing with middleware support. [BasicRouter] registers method
// patterns on an [http.ServeMux]; [Middleware] is applied with the first added as the outermost wrapper.
// [RequestLogger] writes one log line per request.
//
// # OAuth Callback
//
// [OAuthHandler] validates the state parameter, hands the authorization code to an [Exchanger] and delivers
// exactly one [OAuthResult]. Only the first callback is processed.
//
// [CallbackServer] binds the listener, serves the handler in a goroutine and shuts itself down once
// [CallbackServer.Wait] returns. This goroutine is the only concurrency in the program.
package server
