// Package render produces the vector progress charts written next to each
// localization project's JSON snapshot.
//
// The chart is a fixed-width SVG with one horizontal row per language:
// a right-aligned label, a background track, overlay bars scaled to the
// translation and approval percentages, and the numeric translation
// percentage. Rendering is a pure function of its input; no external state
// and no network I/O.
package render
