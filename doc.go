// Package hesabna provides the core logic of a local-first personal finance
// ledger. It records income and expense transactions and keeps a family of
// derived entities consistent with them over time, entirely against a local,
// offline-capable store.
//
// The core functionalities include:
//   - Ledger Store: the authoritative mapping from id to entity per
//     collection, loaded and mutated as atomic batches, exposing a fresh
//     consistent snapshot after every mutation.
//   - Linkage Rules: integrity of the relations between a transaction and
//     its optional parent (goal, debt or subscription) under edit and delete.
//   - Recurrence Engine: advancing recurring transactions, subscriptions and
//     debts to their next occurrence while materializing concrete settlement
//     transactions.
//   - Budget Reconciliation: keeping budgets in 1:1 correspondence with
//     expense categories and aggregating spend against limits.
//   - Archival: collapsing a date range of transactions into per-category
//     summary totals to bound ledger size, preserving financial totals.
//   - Health Scoring: a 0-100 composite score computed from savings rate,
//     debt-to-income, emergency fund coverage and income diversity.
//
// This package serves as the foundational logic for the `hsb` command-line
// tool. Network-dependent collaborators (AI suggestions) live behind the
// advisor package and are strictly best effort: no ledger mutation ever
// depends on them.
package hesabna
