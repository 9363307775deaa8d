// Package middleware contains HTTP middleware for the Fiber application.
//
// # Components
//
//   - auth: API key validation (X-API-Key or Bearer token) protecting every route.
//   - rayid: assigns a RayID to each request, stores it in the Fiber locals
//     for logger.WithRayID and echoes it in the X-Ray-ID response header.
//
// Both are registered globally by the start command, rayid first.
package middleware
