// Package biquad provides the second-order IIR section used by every filter
// stage of the instrument: the mouth-driven lowpass, the three vowel
// formants, and the consonant noise band-passes.
//
// A [Section] runs Direct Form II Transposed. Coefficients can be replaced
// while the delay line is kept, which is how the engine sweeps cutoff and
// formant frequencies once per control block. Coefficient design lives in
// dsp/filter/design.
package biquad
