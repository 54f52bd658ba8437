// Package player plays songs on the instrument with a lookahead scheduler.
//
// A periodic tick scans the note list for notes that start inside a short
// window ahead of the audio clock. Each such note gets its syllable train
// scheduled on the audio clock right away, plus a delayed callback that
// sets the pitch and opens the gate at the note start. If the next note
// leaves a gap, a second callback closes the gate at the note end. Timer
// jitter therefore only affects the control callbacks, never the syllable
// timing.
package player
