// Package exporter serializes tidy tables to CSV files, optionally
// atomically and with a UTF-8 BOM for Excel compatibility.
package exporter
