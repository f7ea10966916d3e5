// Package wikiscrape fetches encyclopedia article pages over a hand-framed
// HTTP/1.1-over-TLS client and turns them into structured article records
// (title, lead summary, sections, internal links, content images).
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., tls/, goquery/, sqlite/, yaml/).
package wikiscrape
