// Package spectrum implements the output analyser that feeds the spectrum
// bars: a ring buffer of recent samples, a Blackman-windowed FFT and
// per-bin magnitude smoothing, read back either in dB or as bytes scaled
// between a floor and a ceiling level.
package spectrum
