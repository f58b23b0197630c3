// Package store provides the SQLite-backed catalog store for the
// hamburgueria: categories, menu items, and combos.
//
// Combos reference items by display name, so the store owns the repair
// logic that keeps combo rows consistent when an item is renamed,
// re-priced, or deleted:
//
//   - Rename: every matching slot is rewritten to the new name, the old
//     name is substring-replaced inside combo display names, and affected
//     combo prices are recomputed.
//   - Re-price: affected combo prices are recomputed from live item prices.
//   - Delete: combos whose required (main) slot matches are deleted;
//     optional (drink/side) slots are nulled with the price recomputed,
//     floored at 0.
//
// Every multi-statement operation runs in a single transaction. A combo's
// price equals the sum of its non-null slots' item prices at every commit
// point; no partially-repaired state is ever visible.
//
// # Database Configuration
//
//   - WAL mode: concurrent reads during writes
//   - synchronous=NORMAL: balance durability/performance
//   - busy_timeout=5000: wait for locks up to 5 seconds
//   - foreign_keys=ON: combo slots reference items(name), items reference
//     categories(id)
//
// Name uniqueness is case-insensitive and accent-insensitive. The
// accent-insensitive half is enforced in this package via catalog.Normalize;
// the COLLATE NOCASE unique indexes in the schema are a case-insensitive
// backstop only.
package store
