// Package analysis looks at recorded body trajectories after a run.
//
//   - [PowerSpectrum] and [DominantPeriod]: how often a coordinate repeats
//   - [Section]: stroboscopic section of a trajectory
//   - [PortraitASCII]: terminal scatter plot of a phase portrait
//
// Periods are measured in samples. Multiply by the sampling interval of the
// run to get frames.
package analysis
