// Package api contains the HTTP handlers, request/response models and
// error mapping for the REST surface. Handlers stay thin: they decode and
// validate requests, delegate to the stores and services, and project the
// results into response shapes.
package api
