// Package effects provides the non-linear stages of the instrument voice.
//
//   - Waveshaper with DriveCurve: the soft-clip drive stage.
//   - BitCrusher: sample-and-hold downsampling and bit-depth reduction for
//     lo-fi colour. Transparent until configured.
//
// Both are per-sample kernels with no allocation on the hot path.
package effects
