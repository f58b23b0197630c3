// Package catalog defines the domain model for the hamburgueria catalog:
// categories, menu items, combos, and the error taxonomy shared by the
// store and the CLI.
//
// Names are unique under case-insensitive, accent-insensitive comparison.
// Normalize produces the comparison key; stored values keep their original
// casing and diacritics for display.
//
// Combos reference items by display name, not by id, so every item rename
// or delete has to be propagated into combo rows. The store owns that
// repair logic; this package only defines the shapes it operates on.
package catalog
