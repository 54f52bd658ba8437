// Package osc provides the signal sources of the instrument: a band-limited
// sawtooth for the voice, a sine LFO for vibrato, and a precomputed white
// noise buffer for consonant bursts.
package osc
