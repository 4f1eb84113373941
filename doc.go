// Package collide is a 2D geometry and collision library.
//
// It provides ray, segment and line intersection, polygon winding and
// convexity tests, convex decomposition and polygon union. Forms (points,
// circles and polygons) registered with a Manager are kept in a fixed-depth
// quad tree so that collision queries only test nearby candidates.
//
// Coordinates follow screen space with y pointing down; Clockwise and
// CounterClockwise refer to that orientation.
//
// Nothing in the package is safe for concurrent use except SetLogger and
// Logger.
package collide
