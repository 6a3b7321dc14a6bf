// Package http exposes the persisted tidy datasets over a small read-only
// API: listing, JSON retrieval and raw CSV download.
package http
