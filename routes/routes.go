package routes

// Routes for the address similarity service.
//
// - api.go: versioned API routes (/v1/*)
// - web.go: landing and docs routes (/, /docs)
// - routes.go: composition
