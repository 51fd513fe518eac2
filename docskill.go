// Package docskill converts external documentation sources into skill
// bundles: directories of categorized Markdown reference files plus a
// machine-readable summary, ready for consumption by an AI assistant.
// It crawls documentation sites breadth-first, extracts content and code
// samples, assigns keyword-driven categories, and writes the result as a
// bundle.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., goquery/, http/, fs/).
package docskill
