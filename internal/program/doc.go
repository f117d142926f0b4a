// Package program holds the artifact produced by the compiler: the ordered
// schedule of actions, the table of error handlers and the accumulated
// metadata of one spell.
//
// # Lifecycle
//
//  1. **Construction:** the compiler creates a Program with New and fills it
//     through Schedule and Guard while it walks the grid.
//  2. **Hand-off:** once compilation succeeds the Program is never mutated
//     again. A failed compilation discards it.
//  3. **Execution:** the executor reads the schedule and handler table. Any
//     number of runs may read one Program concurrently.
//
// # Schedule order
//
// Actions are kept in build order. Re-scheduling a piece moves its action to
// the end instead of adding a duplicate. Runs consume the schedule as a stack,
// last action first (see ExecutionOrder), so an action at the end runs before
// every piece that required it.
package program
