// Package store implements the persistent named-dataset store: a mapping
// from dataset name to tidy table, backed by one CSV file per dataset.
package store
