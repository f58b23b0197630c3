// Package harness provides a conformance testing framework for the
// catalog store.
//
// Scenarios are YAML files describing a catalog flow: seed items and
// combos, then a sequence of mutations with expected outcomes (success or
// a specific error code). After the flow runs, the harness renders a
// deterministic snapshot of every listing and compares it against a golden
// file, so the full observable state of the catalog is pinned, not just
// the fields an assertion happens to mention.
//
// Each scenario runs against a fresh database file for isolation. To
// regenerate golden files after an intentional behavior change:
//
//	go test ./internal/harness -update
package harness
