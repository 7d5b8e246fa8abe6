// Package zone decodes the flattened candidate-zone encoding used by the
// scan kernel into a compact arena of location indices.
//
// A zone collection arrives as two flat sequences:
//
//	zones        = [0, 1,  1, 2, 3,  4]
//	zone_lengths = [2,     3,        1]
//
// which describes three zones {0,1}, {1,2,3} and {4}. Decode validates the
// encoding once and keeps the indices in a single contiguous slice plus an
// offset table, so the aggregation hot loop walks memory linearly and no
// per-zone allocation happens.
//
// Zones keep their input order; a zone's position in that order is the
// identifier reported back to callers.
package zone
