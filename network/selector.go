package network

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
)

var (
	// ErrNetworkAlreadySelected is the panic value raised when a second,
	// different network is selected on the same Selector.
	ErrNetworkAlreadySelected = errors.New("network already selected")

	// ErrNoNetworkSelected is the panic value raised when the active
	// network is queried before any selection.
	ErrNoNetworkSelected = errors.New("no network selected")
)

// Selector holds the one network that governs a process. The first
// successful Select fixes it for the lifetime of the Selector; afterwards
// readers see an immutable *Params without locking.
type Selector struct {
	mtx    sync.Mutex
	active atomic.Pointer[Params]
}

// NewSelector returns a Selector with no active network.
func NewSelector() *Selector {
	return &Selector{}
}

// Select activates the network identified by id. Selecting the already
// active network again is a no-op. Selecting a different one is a
// programming error and panics with ErrNetworkAlreadySelected, as continuing
// would leave the process with an ambiguous identity. An unknown id returns
// ErrUnknownNet and leaves the Selector untouched.
func (s *Selector) Select(id ID) (*Params, error) {
	params, err := Lookup(id)
	if err != nil {
		return nil, err
	}

	s.mtx.Lock()
	defer s.mtx.Unlock()

	if cur := s.active.Load(); cur != nil {
		if cur.ID == id {
			return cur, nil
		}
		panic(fmt.Errorf("%w: %s is active, refusing %s",
			ErrNetworkAlreadySelected, cur.Name, params.Name))
	}

	s.active.Store(params)
	log.Infof("Active network: %s (magic %x, port %s)", params.Name,
		params.Net[:], params.DefaultPort)

	return params, nil
}

// Active returns the selected network. It panics with ErrNoNetworkSelected
// when Select has not been called yet.
func (s *Selector) Active() *Params {
	params := s.active.Load()
	if params == nil {
		panic(ErrNoNetworkSelected)
	}
	return params
}

// IsSelected reports whether a network has been selected.
func (s *Selector) IsSelected() bool {
	return s.active.Load() != nil
}

// processSelector is the process-wide selection used by SelectNetwork and
// ActiveParams.
var processSelector = NewSelector()

// SelectNetwork selects the process-wide active network. See
// Selector.Select.
func SelectNetwork(id ID) (*Params, error) {
	return processSelector.Select(id)
}

// ActiveParams returns the process-wide active network. See
// Selector.Active.
func ActiveParams() *Params {
	return processSelector.Active()
}

// DefaultSelector returns the process-wide Selector.
func DefaultSelector() *Selector {
	return processSelector
}
