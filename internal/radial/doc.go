// Package radial computes circular averages and radial intensity profiles.
//
// CircularAverage samples a digital circle of integer radius around a
// center, deduplicating samples that round to the same pixel, and returns
// the mean intensity of the distinct in-bounds pixels. Sweep repeats this
// over a range of radii to characterize radial falloff.
//
// Both functions only read the buffer they are given and keep no reference
// to it after returning.
package radial
