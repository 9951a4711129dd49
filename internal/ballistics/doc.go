// Package ballistics solves no-drag (vacuum) firing problems under uniform gravity.
//
// Everything here is a pure function of its arguments: no I/O, no logging and no
// shared state, so callers may invoke it concurrently without coordination.
// Distances are in metres, velocities in m/s, angles in radians and time in seconds.
package ballistics
