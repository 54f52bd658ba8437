// Package output turns rendered engine audio into bytes: interleaved PCM
// for audio devices, 16-bit WAV files, and whole songs rendered offline.
package output
