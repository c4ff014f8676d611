package nft

import (
	"fmt"
	"math"
	"strings"

	"github.com/tphakala/go-nft/internal/discretization"
	"github.com/tphakala/go-nft/internal/engine"
	"github.com/tphakala/go-nft/internal/inverse"
)

// Every option enum reserves 0 for "use the default".

// BoundStateLocalization selects how bound states are found.
type BoundStateLocalization int

const (
	LocalizationDefault BoundStateLocalization = iota

	// FastEigenvalue roots the polynomial a(z) of the whole potential. Cost
	// grows with the cube of the sample count.
	FastEigenvalue

	// Newton refines ForwardOptions.Seeds, or a seed lattice when none are
	// given.
	Newton

	// SubsampleAndRefine roots a(z) of a decimated potential and refines the
	// candidates at full resolution.
	SubsampleAndRefine
)

// BoundStateFiltering selects which bound-state candidates are reported.
type BoundStateFiltering int

const (
	FilteringDefault BoundStateFiltering = iota

	// FilterNone keeps every finite candidate.
	FilterNone

	// FilterBasic keeps 0 < Im λ ≤ max|q| and |Re λ| < π/(2h).
	FilterBasic

	// FilterFull also merges candidates closer than 1e-6·(1+|λ|).
	FilterFull
)

// DiscreteSpectrumType selects the coefficients attached to bound states.
type DiscreteSpectrumType int

const (
	DiscreteDefault DiscreteSpectrumType = iota

	// NormingConstants reports b(λ_k).
	NormingConstants

	// Residues reports b(λ_k)/a'(λ_k).
	Residues

	// NormingAndResidues reports both.
	NormingAndResidues

	// SkipDiscrete skips the bound-state search.
	SkipDiscrete
)

// ContinuousSpectrumType selects the continuous-spectrum outputs.
type ContinuousSpectrumType int

const (
	ContinuousDefault ContinuousSpectrumType = iota

	// ReflectionCoefficient reports b(ξ)/a(ξ).
	ReflectionCoefficient

	// AB reports a(ξ) and b(ξ).
	AB

	// ReflectionAndAB reports all three.
	ReflectionAndAB

	// SkipContinuous skips the frequency sweep.
	SkipContinuous
)

// InverseContinuousSpectrumType declares what the inverse transform's
// continuous spectrum holds.
type InverseContinuousSpectrumType int

const (
	InverseContinuousDefault InverseContinuousSpectrumType = iota

	// InverseReflection is b(ξ)/a(ξ).
	InverseReflection

	// InverseBOfXi is b(ξ).
	InverseBOfXi

	// InverseBOfTau is the Fourier transform of b; it is not supported.
	InverseBOfTau
)

// InversionMethod selects how the continuous part is inverted.
type InversionMethod int

const (
	MethodDefault InversionMethod = iota

	// ReflectionCepstrum builds a minimum-phase a from |R| and layer-peels
	// once.
	ReflectionCepstrum

	// IterativeDefectCorrection repeats ReflectionCepstrum on a corrected
	// reflection coefficient until the forward transform of the result
	// matches the input.
	IterativeDefectCorrection
)

// InverseDiscreteSpectrumType declares the bound-state coefficients passed to
// Inverse.
type InverseDiscreteSpectrumType int

const (
	InverseDiscreteDefault InverseDiscreteSpectrumType = iota
	InverseNormingConstants
	InverseResidues
)

// PeriodicLocalization selects how periodic spectra are found.
type PeriodicLocalization int

const (
	PeriodicLocalizationDefault PeriodicLocalization = iota

	// PeriodicSubsampleAndRefine roots the polynomial forms of a decimated
	// period and refines the roots.
	PeriodicSubsampleAndRefine

	// GridSearch scans the real axis.
	GridSearch

	// Mixed combines both.
	Mixed
)

// PeriodicFiltering selects which periodic spectrum points are reported.
type PeriodicFiltering int

const (
	PeriodicFilteringDefault PeriodicFiltering = iota
	PeriodicFilterNone

	// PeriodicFilterManual keeps points inside PeriodicOptions.BoundingBox.
	PeriodicFilterManual

	// PeriodicFilterAuto keeps finite points inside the Nyquist band.
	PeriodicFilterAuto
)

// Toggle is an on/off option whose zero value selects the default.
type Toggle int

const (
	ToggleDefault Toggle = iota
	On
	Off
)

func (t Toggle) resolve(def bool) bool {
	switch t {
	case On:
		return true
	case Off:
		return false
	default:
		return def
	}
}

// Box is a rectangle in the complex λ-plane.
type Box struct {
	ReMin, ReMax, ImMin, ImMax float64
}

// ForwardOptions configures Forward. The zero value selects every default.
type ForwardOptions struct {
	Discretization     Discretization
	Localization       BoundStateLocalization
	Filtering          BoundStateFiltering
	DiscreteSpectrum   DiscreteSpectrumType
	ContinuousSpectrum ContinuousSpectrumType

	// Niter caps the Newton iterations per bound state.
	Niter int

	// Seeds are initial guesses for Newton localization.
	Seeds []complex128

	// Normalization rescales running products to avoid overflow (default on).
	Normalization Toggle

	// Richardson extrapolates from a second transform at step 2h (default
	// off).
	Richardson Toggle

	// DegeneracyTolerance is the |a(ξ)| below which a node is degenerate.
	DegeneracyTolerance float64

	// Workers caps the goroutines of one call; 0 means GOMAXPROCS.
	Workers int
}

// InverseOptions configures Inverse. The zero value selects every default.
type InverseOptions struct {
	// Discretization must be Split2A (default) or Split2Modal.
	Discretization     Discretization
	ContinuousSpectrum InverseContinuousSpectrumType
	Method             InversionMethod
	DiscreteSpectrum   InverseDiscreteSpectrumType

	// MaxIter caps IterativeDefectCorrection.
	MaxIter int

	// Tolerance ends IterativeDefectCorrection once max|R - R[q]| reaches it.
	Tolerance float64

	// Oversampling multiplies the grid on which |a|² is interpolated before
	// the cepstrum and the minimum-phase a(z) are computed.
	Oversampling int

	Workers int
}

// PeriodicOptions configures Periodic. The zero value selects every default.
type PeriodicOptions struct {
	Discretization Discretization
	Localization   PeriodicLocalization
	Filtering      PeriodicFiltering

	// BoundingBox applies to PeriodicFilterManual; nil means the whole plane.
	BoundingBox *Box

	// MaxEvaluations caps the Newton steps per candidate.
	MaxEvaluations int

	Normalization Toggle
	Workers       int
}

type forwardParams struct {
	scheme         *discretization.Scheme
	discrete       engine.DiscreteRequest
	skipDiscrete   bool
	continuous     engine.ContinuousRequest
	skipContinuous bool
	normalize      bool
	richardson     bool
}

type inverseParams struct {
	scheme       discretization.ID
	input        inverse.Input
	method       inverse.Method
	residues     bool
	maxIter      int
	tolerance    float64
	oversampling int
	workers      int
}

type periodicParams struct {
	scheme    *discretization.Scheme
	req       engine.PeriodicRequest
	normalize bool
}

// Validate checks every explicitly set field.
func (o *ForwardOptions) Validate() error {
	if o == nil {
		return nil
	}
	_, err := o.resolve()
	return err
}

func (o *ForwardOptions) resolve() (*forwardParams, error) {
	if o == nil {
		o = &ForwardOptions{}
	}
	id := o.Discretization
	if id == discretization.Default {
		id = defaultForwardScheme
	}
	scheme, err := discretization.Lookup(id)
	if err != nil {
		return nil, classify(err)
	}
	if o.Niter < 0 {
		return nil, invalidf("Niter must be non-negative, got %d", o.Niter)
	}
	if o.Workers < 0 {
		return nil, invalidf("Workers must be non-negative, got %d", o.Workers)
	}
	if o.DegeneracyTolerance < 0 || math.IsNaN(o.DegeneracyTolerance) || math.IsInf(o.DegeneracyTolerance, 0) {
		return nil, invalidf("DegeneracyTolerance must be finite and non-negative, got %g", o.DegeneracyTolerance)
	}
	for i, s := range o.Seeds {
		if !isFinite(s) {
			return nil, invalidf("seed %d is not finite", i)
		}
	}

	p := &forwardParams{
		scheme:     scheme,
		normalize:  o.Normalization.resolve(true),
		richardson: o.Richardson.resolve(false),
	}
	if err := checkToggle("Normalization", o.Normalization); err != nil {
		return nil, err
	}
	if err := checkToggle("Richardson", o.Richardson); err != nil {
		return nil, err
	}

	p.discrete = engine.DiscreteRequest{
		Scheme:  id,
		Niter:   orDefault(o.Niter, defaultNiter),
		Seeds:   o.Seeds,
		Workers: o.Workers,
	}
	switch o.Localization {
	case LocalizationDefault, SubsampleAndRefine:
		p.discrete.Localization = engine.SubsampleAndRefine
	case FastEigenvalue:
		p.discrete.Localization = engine.FastEigenvalue
	case Newton:
		p.discrete.Localization = engine.Newton
	default:
		return nil, invalidf("unknown bound-state localization %d", int(o.Localization))
	}
	switch o.Filtering {
	case FilteringDefault, FilterFull:
		p.discrete.Filtering = engine.FilterFull
	case FilterBasic:
		p.discrete.Filtering = engine.FilterBasic
	case FilterNone:
		p.discrete.Filtering = engine.FilterNone
	default:
		return nil, invalidf("unknown bound-state filtering %d", int(o.Filtering))
	}
	switch o.DiscreteSpectrum {
	case DiscreteDefault, NormingConstants:
		p.discrete.Norming = true
	case Residues:
		p.discrete.Residues = true
	case NormingAndResidues:
		p.discrete.Norming, p.discrete.Residues = true, true
	case SkipDiscrete:
		p.skipDiscrete = true
	default:
		return nil, invalidf("unknown discrete spectrum type %d", int(o.DiscreteSpectrum))
	}

	p.continuous = engine.ContinuousRequest{
		DegeneracyTolerance: o.DegeneracyTolerance,
		Workers:             o.Workers,
	}
	if p.continuous.DegeneracyTolerance == 0 {
		p.continuous.DegeneracyTolerance = defaultDegeneracyTolerance
	}
	switch o.ContinuousSpectrum {
	case ContinuousDefault, ReflectionCoefficient:
		p.continuous.Reflection = true
	case AB:
		p.continuous.AB = true
	case ReflectionAndAB:
		p.continuous.Reflection, p.continuous.AB = true, true
	case SkipContinuous:
		p.skipContinuous = true
	default:
		return nil, invalidf("unknown continuous spectrum type %d", int(o.ContinuousSpectrum))
	}
	return p, nil
}

// Validate checks every explicitly set field.
func (o *InverseOptions) Validate() error {
	if o == nil {
		return nil
	}
	_, err := o.resolve()
	return err
}

func (o *InverseOptions) resolve() (*inverseParams, error) {
	if o == nil {
		o = &InverseOptions{}
	}
	p := &inverseParams{
		scheme:       o.Discretization,
		maxIter:      orDefault(o.MaxIter, defaultMaxIter),
		tolerance:    o.Tolerance,
		oversampling: orDefault(o.Oversampling, defaultOversampling),
		workers:      o.Workers,
	}
	if err := checkInverseScheme(&p.scheme); err != nil {
		return nil, err
	}
	if o.MaxIter < 0 {
		return nil, invalidf("MaxIter must be non-negative, got %d", o.MaxIter)
	}
	if o.Oversampling < 0 {
		return nil, invalidf("Oversampling must be at least 1, got %d", o.Oversampling)
	}
	if o.Workers < 0 {
		return nil, invalidf("Workers must be non-negative, got %d", o.Workers)
	}
	if o.Tolerance < 0 || math.IsNaN(o.Tolerance) || math.IsInf(o.Tolerance, 0) {
		return nil, invalidf("Tolerance must be finite and non-negative, got %g", o.Tolerance)
	}
	if p.tolerance == 0 {
		p.tolerance = defaultInverseTolerance
	}

	switch o.ContinuousSpectrum {
	case InverseContinuousDefault, InverseReflection:
		p.input = inverse.Reflection
	case InverseBOfXi:
		p.input = inverse.BOfXi
	case InverseBOfTau:
		return nil, invalidf("continuous spectrum type b(tau) is not supported")
	default:
		return nil, invalidf("unknown inverse continuous spectrum type %d", int(o.ContinuousSpectrum))
	}
	switch o.Method {
	case MethodDefault, ReflectionCepstrum:
		p.method = inverse.Cepstrum
	case IterativeDefectCorrection:
		p.method = inverse.DefectCorrection
	default:
		return nil, invalidf("unknown inversion method %d", int(o.Method))
	}
	switch o.DiscreteSpectrum {
	case InverseDiscreteDefault, InverseNormingConstants:
	case InverseResidues:
		p.residues = true
	default:
		return nil, invalidf("unknown inverse discrete spectrum type %d", int(o.DiscreteSpectrum))
	}
	return p, nil
}

func checkInverseScheme(id *Discretization) error {
	if *id == discretization.Default {
		*id = defaultInverseScheme
	}
	if _, err := discretization.Lookup(*id); err != nil {
		return classify(err)
	}
	if !id.SupportsInverse() {
		return invalidf("discretization %s has no inverse; use %s or %s", *id, Split2A, Split2Modal)
	}
	return nil
}

// Validate checks every explicitly set field.
func (o *PeriodicOptions) Validate() error {
	if o == nil {
		return nil
	}
	_, err := o.resolve()
	return err
}

func (o *PeriodicOptions) resolve() (*periodicParams, error) {
	if o == nil {
		o = &PeriodicOptions{}
	}
	id := o.Discretization
	if id == discretization.Default {
		id = defaultPeriodicScheme
	}
	scheme, err := discretization.Lookup(id)
	if err != nil {
		return nil, classify(err)
	}
	if o.MaxEvaluations < 0 {
		return nil, invalidf("MaxEvaluations must be non-negative, got %d", o.MaxEvaluations)
	}
	if o.Workers < 0 {
		return nil, invalidf("Workers must be non-negative, got %d", o.Workers)
	}
	if err := checkToggle("Normalization", o.Normalization); err != nil {
		return nil, err
	}

	p := &periodicParams{
		scheme:    scheme,
		normalize: o.Normalization.resolve(true),
		req: engine.PeriodicRequest{
			MaxEvaluations: orDefault(o.MaxEvaluations, defaultMaxEvaluations),
			Scheme:         id,
			Workers:        o.Workers,
			BoundingBox:    [4]float64{math.Inf(-1), math.Inf(1), math.Inf(-1), math.Inf(1)},
		},
	}
	if b := o.BoundingBox; b != nil {
		if math.IsNaN(b.ReMin) || math.IsNaN(b.ReMax) || math.IsNaN(b.ImMin) || math.IsNaN(b.ImMax) ||
			b.ReMin > b.ReMax || b.ImMin > b.ImMax {
			return nil, invalidf("bounding box %+v is empty", *b)
		}
		p.req.BoundingBox = [4]float64{b.ReMin, b.ReMax, b.ImMin, b.ImMax}
	}
	switch o.Localization {
	case PeriodicLocalizationDefault, Mixed:
		p.req.Localization = engine.Mixed
	case PeriodicSubsampleAndRefine:
		p.req.Localization = engine.PeriodicSubsample
	case GridSearch:
		p.req.Localization = engine.GridSearch
	default:
		return nil, invalidf("unknown periodic localization %d", int(o.Localization))
	}
	switch o.Filtering {
	case PeriodicFilteringDefault, PeriodicFilterAuto:
		p.req.Filtering = engine.PeriodicFilterAuto
	case PeriodicFilterManual:
		p.req.Filtering = engine.PeriodicFilterManual
	case PeriodicFilterNone:
		p.req.Filtering = engine.PeriodicFilterNone
	default:
		return nil, invalidf("unknown periodic filtering %d", int(o.Filtering))
	}
	return p, nil
}

func checkToggle(name string, t Toggle) error {
	if t < ToggleDefault || t > Off {
		return invalidf("unknown %s value %d", name, int(t))
	}
	return nil
}

func orDefault(v, def int) int {
	if v == 0 {
		return def
	}
	return v
}

// Names accepted by the Parse functions, in enum order after the default.
var (
	localizationNames      = []string{"fasteigenvalue", "newton", "subsampleandrefine"}
	filteringNames         = []string{"none", "basic", "full"}
	discreteNames          = []string{"norming", "residues", "both", "skip"}
	continuousNames        = []string{"reflection", "ab", "both", "skip"}
	inverseContinuousNames = []string{"reflection", "bofxi", "boftau"}
	methodNames            = []string{"cepstrum", "defectcorrection"}
	inverseDiscreteNames   = []string{"norming", "residues"}
	periodicLocalizeNames  = []string{"subsampleandrefine", "gridsearch", "mixed"}
	periodicFilteringNames = []string{"none", "manual", "auto"}
	toggleNames            = []string{"on", "off"}
)

func enumName(names []string, v int) string {
	if v == 0 {
		return "default"
	}
	if v > 0 && v <= len(names) {
		return names[v-1]
	}
	return fmt.Sprintf("invalid(%d)", v)
}

func parseEnum(kind string, names []string, s string) (int, error) {
	key := strings.ToLower(strings.NewReplacer("_", "", "-", "", " ", "").Replace(s))
	if key == "" || key == "default" {
		return 0, nil
	}
	for i, n := range names {
		if n == key {
			return i + 1, nil
		}
	}
	return 0, invalidf("unknown %s %q", kind, s)
}

func (v BoundStateLocalization) String() string {
	return enumName(localizationNames, int(v))
}

func (v BoundStateFiltering) String() string {
	return enumName(filteringNames, int(v))
}

func (v DiscreteSpectrumType) String() string {
	return enumName(discreteNames, int(v))
}

func (v ContinuousSpectrumType) String() string {
	return enumName(continuousNames, int(v))
}

func (v InverseContinuousSpectrumType) String() string {
	return enumName(inverseContinuousNames, int(v))
}

func (v InversionMethod) String() string {
	return enumName(methodNames, int(v))
}

func (v InverseDiscreteSpectrumType) String() string {
	return enumName(inverseDiscreteNames, int(v))
}

func (v PeriodicLocalization) String() string {
	return enumName(periodicLocalizeNames, int(v))
}

func (v PeriodicFiltering) String() string {
	return enumName(periodicFilteringNames, int(v))
}

func (v Toggle) String() string {
	return enumName(toggleNames, int(v))
}

// ParseBoundStateLocalization accepts "fasteigenvalue", "newton",
// "subsampleandrefine" or "default"; case, '-' and '_' are ignored.
func ParseBoundStateLocalization(s string) (BoundStateLocalization, error) {
	v, err := parseEnum("bound-state localization", localizationNames, s)
	return BoundStateLocalization(v), err
}

// ParseBoundStateFiltering accepts "none", "basic", "full" or "default".
func ParseBoundStateFiltering(s string) (BoundStateFiltering, error) {
	v, err := parseEnum("bound-state filtering", filteringNames, s)
	return BoundStateFiltering(v), err
}

// ParseDiscreteSpectrumType accepts "norming", "residues", "both", "skip" or
// "default".
func ParseDiscreteSpectrumType(s string) (DiscreteSpectrumType, error) {
	v, err := parseEnum("discrete spectrum type", discreteNames, s)
	return DiscreteSpectrumType(v), err
}

// ParseContinuousSpectrumType accepts "reflection", "ab", "both", "skip" or
// "default".
func ParseContinuousSpectrumType(s string) (ContinuousSpectrumType, error) {
	v, err := parseEnum("continuous spectrum type", continuousNames, s)
	return ContinuousSpectrumType(v), err
}

// ParseInverseContinuousSpectrumType accepts "reflection", "bofxi", "boftau"
// or "default".
func ParseInverseContinuousSpectrumType(s string) (InverseContinuousSpectrumType, error) {
	v, err := parseEnum("inverse continuous spectrum type", inverseContinuousNames, s)
	return InverseContinuousSpectrumType(v), err
}

// ParseInversionMethod accepts "cepstrum", "defectcorrection" or "default".
func ParseInversionMethod(s string) (InversionMethod, error) {
	v, err := parseEnum("inversion method", methodNames, s)
	return InversionMethod(v), err
}

// ParseInverseDiscreteSpectrumType accepts "norming", "residues" or
// "default".
func ParseInverseDiscreteSpectrumType(s string) (InverseDiscreteSpectrumType, error) {
	v, err := parseEnum("inverse discrete spectrum type", inverseDiscreteNames, s)
	return InverseDiscreteSpectrumType(v), err
}

// ParsePeriodicLocalization accepts "subsampleandrefine", "gridsearch",
// "mixed" or "default".
func ParsePeriodicLocalization(s string) (PeriodicLocalization, error) {
	v, err := parseEnum("periodic localization", periodicLocalizeNames, s)
	return PeriodicLocalization(v), err
}

// ParsePeriodicFiltering accepts "none", "manual", "auto" or "default".
func ParsePeriodicFiltering(s string) (PeriodicFiltering, error) {
	v, err := parseEnum("periodic filtering", periodicFilteringNames, s)
	return PeriodicFiltering(v), err
}

// ParseToggle accepts "on", "off" or "default".
func ParseToggle(s string) (Toggle, error) {
	v, err := parseEnum("toggle", toggleNames, s)
	return Toggle(v), err
}
