// Package design computes biquad coefficients for the instrument's filters.
//
// Only the two responses the voice needs are provided: an RBJ lowpass for
// the mouth "wah" and a 0 dB-peak bandpass for vowel formants and consonant
// noise. Invalid frequencies yield zero coefficients (silence) rather than
// an unstable filter.
package design
