// Package statistic implements the one-sided Poisson log-likelihood-ratio
// scan statistic for a single space-time window.
//
// For a window with observed count c_in and baseline b_in inside, and
// c_out, b_out outside (C, B the totals):
//
//	score = c_in·ln(c_in/b_in) + c_out·ln(c_out/b_out) − C·ln(C/B)
//
// when c_in/b_in > c_out/b_out, and 0 otherwise; 0·ln(0) is taken as 0.
// Windows with no baseline inside or outside are degenerate: they score −∞
// and are never eligible as a cluster.
package statistic
