// Package ui holds the display-independent parts of the desktop front end:
// screen layout, pointer routing to the instrument regions, and the
// keyboard actions. The ebiten glue in package app only translates input
// events and draws.
package ui
