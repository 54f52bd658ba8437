// Package instrument ties pointer input, the song player and the stored
// preferences to one engine.
//
// Front ends translate their own events into ribbon positions (0 at the
// top, 1 at the bottom) and head/stem coordinates in pixels, and read back
// a Snapshot for drawing. Audio starts lazily on the first gesture.
package instrument
