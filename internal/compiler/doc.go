/*
Package compiler turns a spell drawn on a grid into an executable program.

Compilation is a depth-first walk that starts from every trick on the grid
and follows parameter connections towards the pieces they depend on:

 1. Handler Association: every error handler resolves the pieces its claimed
    parameters point at and registers itself as their guard.

 2. Root Discovery: tricks (and modifiers) are the program roots. A spell
    without any fails immediately.

 3. Dependency Walk: each root is built with an empty path. Building a piece
    schedules it (or moves its existing action to the end of the schedule),
    builds its guarding handler, then resolves and builds every enabled
    parameter. The path is copied for every branch, so only a piece that
    depends on itself is reported as an infinite loop; a piece shared by two
    branches is simply re-promoted.

 4. Validation: the accumulated cost and potency must be non-negative and the
    spell must be named.

Redirectors crossed by any lookup contribute their metadata exactly once and
are never scheduled.

Compile keeps all of its working state in a value local to the call, so any
number of spells may be compiled concurrently. The first error stops the
walk; no partial program is ever returned.
*/
package compiler
