package nft

// ForwardSimple runs Forward with every default on the window
// [DefaultXi1, DefaultXi2] with DefaultM nodes, reporting up to DefaultKMax
// bound states.
func ForwardSimple(q []complex128, tw TimeWindow, kappa Kappa) (*ForwardResult, error) {
	return Forward(q, tw, FrequencyWindow{Xi1: DefaultXi1, Xi2: DefaultXi2, M: DefaultM}, DefaultKMax, kappa, nil)
}

// InverseSimple reconstructs d samples from a reflection coefficient given on
// the default window of InverseXi with m nodes, plus bound states with norming
// constants.
func InverseSimple(reflection []complex128, m int, boundStates, norming []complex128, d int, tw TimeWindow, kappa Kappa) (*InverseResult, error) {
	fw, err := InverseXi(d, tw, m, 0)
	if err != nil {
		return nil, err
	}
	return Inverse(reflection, fw, boundStates, norming, d, tw, kappa, nil)
}

// TimeGrid returns the d sample times of a vanishing potential on tw.
func TimeGrid(d int, tw TimeWindow) []float64 {
	t := make([]float64, d)
	if d == 1 {
		t[0] = tw.T1
		return t
	}
	h := (tw.T2 - tw.T1) / float64(d-1)
	for n := range t {
		t[n] = tw.T1 + float64(n)*h
	}
	return t
}

// Nodes returns the frequencies of fw.
func (fw FrequencyWindow) Nodes() []float64 {
	if fw.M < 1 {
		return nil
	}
	return nodes(fw)
}
