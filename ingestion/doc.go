// Package ingestion provides pipeline orchestration for capturing contacts.
//
// The Pipeline type manages the capture workflow for new contacts, including:
//   - Adding the contact record to storage immediately
//   - Extracting profile fields and searchable tags asynchronously
//   - Looking up enrichment data asynchronously
//
// Processing is performed concurrently using worker pools to maximize throughput.
// Errors during async processing are logged but do not fail the capture operation.
package ingestion
