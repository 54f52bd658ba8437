// Package engine renders the instrument voice.
//
// The signal path is
//
//	saw (+ vibrato LFO) -> gate -> lowpass (mouth wah)
//	    -> dry gain                                      -> waveshaper
//	    -> 3 band-pass formants -> formant gains -> sum -> formant mix -^
//	waveshaper -> bit crusher -> syllable gate -> master -> analyser
//
// Every gain, frequency and Q in the path is a [param.Param] automated
// against the engine clock, which is the number of rendered frames divided
// by the sample rate. Callers pull audio with [Engine.Render]; the clock
// only moves when audio is rendered.
//
// The graph is built lazily by [Engine.Init]. Until then setters only
// record their values and Render produces silence.
package engine
