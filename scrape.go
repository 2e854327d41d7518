// Package scrape extracts structured documents from arbitrary web pages.
// Given candidate URLs it fetches each page and derives a title, meta
// description, main body text, publication date, author and topical tags
// using ordered fallback chains of heuristics.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., goquery/, http/, sqlite/).
package scrape
