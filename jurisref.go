// Package jurisref extracts citation data for court decisions published on
// Légifrance and Curia, normalizes it, and serializes it as RIS records for
// reference managers.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., goquery/, http/, rod/).
package jurisref
