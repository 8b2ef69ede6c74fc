// Package serplens analyzes the landing pages ranking for a procedure
// keyword across multiple localities. It fetches each ranking page,
// extracts structural and content signals, classifies the page's intent
// type, scores its content richness, diagnoses whether authority or
// content explains its rank, and clusters equivalent sections across
// pages into a consensus outline.
//
// This package contains domain types, interfaces, and the pure decision
// logic (classification rule chains, scoring, diagnosis, aggregation)
// following Ben Johnson's Standard Package Layout. Implementations live
// in subdirectories named after their primary dependency (e.g. goquery/,
// sqlite/, fuzzy/).
package serplens
