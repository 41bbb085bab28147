package entity

import "fmt"

// DetailTab is a tab of the pool detail dialog.
type DetailTab string

const (
	TabOverview  DetailTab = "overview"
	TabAnalytics DetailTab = "analytics"
	TabTokens    DetailTab = "tokens"
	TabPositions DetailTab = "positions"
)

// DefaultDetailTab is selected every time the dialog opens.
const DefaultDetailTab = TabOverview

// DetailTabs lists the tabs in display order.
var DetailTabs = []DetailTab{TabOverview, TabAnalytics, TabTokens, TabPositions}

// ParseDetailTab validates a tab name.
func ParseDetailTab(s string) (DetailTab, error) {
	for _, t := range DetailTabs {
		if string(t) == s {
			return t, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownTab, s)
}

// DetailPhase is the combined open/tab state of the dialog.
type DetailPhase string

const (
	PhaseClosed        DetailPhase = "closed"
	PhaseOpenOverview  DetailPhase = "open-overview"
	PhaseOpenAnalytics DetailPhase = "open-analytics"
	PhaseOpenTokens    DetailPhase = "open-tokens"
	PhaseOpenPositions DetailPhase = "open-positions"
)

// PoolDetailState is the dialog state for one pool card. The raw-data flag is
// orthogonal to the phase and only exists for encrypted pools.
// Not safe for concurrent use; callers serialise access.
type PoolDetailState struct {
	open             bool
	tab              DetailTab
	rawDataShown     bool
	rawDataAvailable bool
}

// NewPoolDetailState returns a closed dialog.
func NewPoolDetailState(encrypted bool) *PoolDetailState {
	return &PoolDetailState{tab: DefaultDetailTab, rawDataAvailable: encrypted}
}

// Open shows the dialog on the default tab with raw data hidden. Nothing
// survives from a previous opening.
func (s *PoolDetailState) Open() {
	s.open = true
	s.tab = DefaultDetailTab
	s.rawDataShown = false
}

// Close hides the dialog.
func (s *PoolDetailState) Close() {
	s.open = false
	s.rawDataShown = false
}

// SelectTab switches the visible tab of an open dialog.
func (s *PoolDetailState) SelectTab(tab DetailTab) error {
	if !s.open {
		return ErrDetailClosed
	}
	if _, err := ParseDetailTab(string(tab)); err != nil {
		return err
	}
	s.tab = tab
	return nil
}

// ToggleRawData flips the raw-data flag and returns the new value.
func (s *PoolDetailState) ToggleRawData() (bool, error) {
	if !s.rawDataAvailable {
		return false, ErrRawDataUnavailable
	}
	if !s.open {
		return false, ErrDetailClosed
	}
	s.rawDataShown = !s.rawDataShown
	return s.rawDataShown, nil
}

func (s *PoolDetailState) IsOpen() bool           { return s.open }
func (s *PoolDetailState) Tab() DetailTab         { return s.tab }
func (s *PoolDetailState) RawDataShown() bool     { return s.rawDataShown }
func (s *PoolDetailState) RawDataAvailable() bool { return s.rawDataAvailable }

// Phase reports the enumerated dialog state.
func (s *PoolDetailState) Phase() DetailPhase {
	if !s.open {
		return PhaseClosed
	}
	switch s.tab {
	case TabAnalytics:
		return PhaseOpenAnalytics
	case TabTokens:
		return PhaseOpenTokens
	case TabPositions:
		return PhaseOpenPositions
	default:
		return PhaseOpenOverview
	}
}
