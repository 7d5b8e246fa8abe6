// Package grid holds the validated space-time data of one scan: a T×N
// matrix of observed case counts and a T×N matrix of expected baselines.
//
// Layout is time-major and row-major: row 0 is the most recent period and
// each row lists the N locations. Both matrices are stored as flat slices so
// that prefix sums and permutations can run over contiguous memory.
//
// A Grid is immutable once built. Permutation replicates never copy the
// baselines; they only supply a fresh counts buffer of the same shape.
package grid
