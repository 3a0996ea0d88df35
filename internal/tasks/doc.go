// Package tasks runs long operations over the favorites set with real-time progress reporting.
//
// # Cookbook Export
//
// [Exporter.Export] writes one recipe card per favorite:
//   - Details are looked up concurrently by a small worker pool
//   - Lookups share a rate limiter so the meal database is not flooded
//   - Each card is rendered by the formatter package (text, Markdown or JSON)
//   - A manifest.json summarizing every card is written last
//
// A failed lookup or write fails only that card; the rest of the export continues.
//
// # Progress Reporting
//
// Operations send [ProgressUpdate] values on an optional channel. Sends use select with default
// so a slow or absent reader never blocks the export.
package tasks
