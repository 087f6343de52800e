package testsignal

import "math"

// DBToLinear converts a level in dB (dBFS for peaks) to a linear amplitude:
// 10^(db/20). DBToLinear(0) is 1.
func DBToLinear(db float64) float64 {
	return math.Pow(10, db/dbAmplitudeFactor)
}

// LUFSToRMS converts a loudness in LUFS to the RMS amplitude of a signal
// with that loudness, using the single-band approximation
//
//	LUFS = -0.691 + 10·log10(meanSquare)
//
// No K-weighting or gating is applied.
func LUFSToRMS(lufs float64) float64 {
	meanSquare := math.Pow(10, (lufs+lufsOffset)/dbPowerFactor)
	return math.Sqrt(meanSquare)
}

// LinearToDB converts a linear amplitude to dB. Amplitudes below 1e-10
// are clamped so silence maps to -200 dB instead of -Inf.
func LinearToDB(amplitude float64) float64 {
	if amplitude < minLinearForDB {
		amplitude = minLinearForDB
	}
	return dbAmplitudeFactor * math.Log10(amplitude)
}

// RMSToLUFS is the inverse of LUFSToRMS.
func RMSToLUFS(rms float64) float64 {
	if rms < minLinearForDB {
		rms = minLinearForDB
	}
	return -lufsOffset + dbPowerFactor*math.Log10(rms*rms)
}
