// Package enrich provides a client for an external contact enrichment
// API. Given an email address it returns public profile data (avatar,
// bio, social handles, employer metadata) that the capture pipeline
// attaches to contacts. The search core only ever reads this data.
package enrich
