// Package inference infers gender and race labels for resumes from candidate
// names and resume wording.
//
// The classifiers are static heuristics: exact-match first-name tables, an
// ordered set of surname tables, and an agentic/communal word-frequency
// ratio. They are signals for aggregate screening analysis only and must not
// be read as facts about any individual candidate.
package inference
