// Package viz computes what the front ends draw: spectrum bars, particle
// effects and the avatar's face geometry. It produces plain numbers and
// path descriptions; drawing them is left to ebiten or the browser.
package viz
