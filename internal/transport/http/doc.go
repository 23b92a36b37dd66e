// Package http implements the HTTP request handlers for the dashboard
// service. It is a thin layer between transport and business logic:
// handlers parse and validate requests, call the service layer, and
// format responses.
//
// A typical request flows through these layers:
//
//	HTTP Request → Chi Router → Middleware → Handler → Service
//	                                              ↓
//	HTTP Response ← Handler ← Service Response ←─┘
//
// Successful JSON responses use a standard envelope:
//
//	{"status": "success", "data": ..., "count": N}
//
// Service errors are mapped to structured API errors by the shared
// ErrorHandler. Handlers are tested with httptest against fake service
// implementations.
package http
