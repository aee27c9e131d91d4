/*
Package grid implements the deterministic Cartesian product over sweep axes.

The enumeration order matches the nested loops of the original launch
scripts: the first declared axis iterates slowest, the last declared axis
fastest. Re-running with identical axis declarations yields an identical
ordered point list.
*/
package grid
