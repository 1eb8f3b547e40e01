// Package pitch tracks the fundamental frequency of a monophonic signal.
//
// A [Detector] is fed consecutive blocks of mono samples and publishes, after
// every block, a pitch estimate together with a confidence value and a
// voiced/quiet classification. Internally it keeps a sliding history of four
// maximum periods and a decayed difference function ("momentum") that
// smooths the estimate across blocks.
//
// Until a pitch has been confirmed for several consecutive blocks the
// detector probes with autocorrelation of the whole history. Once trusted it
// switches to cross-correlation between the halves on either side of the
// analysis point, which follows a held pitch more steadily.
//
//	d, err := pitch.NewDetector(16000, 60, 900)
//	if err != nil {
//		return err
//	}
//	for _, block := range blocks {
//		d.Feed(block)
//		if d.Voiced() {
//			fmt.Printf("%.1f Hz (%.2f)\n", d.Pitch(), d.Confidence())
//		}
//	}
//
// Detectors are not safe for concurrent use. The transform engine they
// share is.
package pitch
