/*
Package executor casts compiled programs.

A cast walks the program's actions from the last scheduled to the first, so
every piece runs after all the pieces it depends on. Each cast owns a
Context that holds the values computed so far; programs themselves are never
written to, which lets any number of casts of the same program run at once.

A piece that fails with a *model.RuntimeError while guarded by an error
handler is suppressed: the handler's value takes its place and the cast goes
on. Any other failure, including a panic inside a piece, aborts the cast.
*/
package executor
