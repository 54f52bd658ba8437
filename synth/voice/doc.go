// Package voice holds the static voicing tables of the instrument: syllable
// styles, vowel formants, syllable types with their consonant noise bursts,
// and the style presets that scale the formant voice and the avatar look.
//
// The tables are read-only. Lookups of unknown names fall back to a
// neutral entry instead of failing.
package voice
