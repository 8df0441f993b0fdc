package network

import (
	"fmt"
	"sort"
	"sync"
)

var (
	registryMtx sync.RWMutex
	registered  = make(map[ID]*Params)
)

// Register adds the parameters of a network to the set of known networks.
// It fails with ErrDuplicateNet when the id, message magic, default port or
// either extended key version is already used by another network, so two
// networks can never be confused on the wire or in a serialized key.
//
// Network parameters should be registered into this package by a main
// package as early as possible.
func Register(params *Params) error {
	registryMtx.Lock()
	defer registryMtx.Unlock()

	if params.ID == 0 {
		return fmt.Errorf("%w: missing id for %q", ErrUnknownNet,
			params.Name)
	}

	for _, other := range registered {
		switch {
		case other.ID == params.ID:
			return fmt.Errorf("%w: id %v", ErrDuplicateNet, params.ID)

		case other.Net == params.Net:
			return fmt.Errorf("%w: %s and %s share magic %x",
				ErrDuplicateNet, other.Name, params.Name,
				params.Net[:])

		case other.DefaultPort == params.DefaultPort:
			return fmt.Errorf("%w: %s and %s share port %s",
				ErrDuplicateNet, other.Name, params.Name,
				params.DefaultPort)

		case sharesVersion(other.HDVersions(), params.HDVersions()):
			return fmt.Errorf("%w: %s and %s share an extended key "+
				"version", ErrDuplicateNet, other.Name,
				params.Name)
		}
	}

	registered[params.ID] = params
	return nil
}

// sharesVersion reports whether any version of a is also used by b, in
// either role.
func sharesVersion(a, b HDVersions) bool {
	for _, x := range [][4]byte{a.Public, a.Private} {
		if x == b.Public || x == b.Private {
			return true
		}
	}
	return false
}

// mustRegister performs the same function as Register except it panics if
// there is an error. This should only be called from package init functions.
func mustRegister(params *Params) {
	if err := Register(params); err != nil {
		panic("failed to register network: " + err.Error())
	}
}

// Lookup returns the registered parameters for id.
func Lookup(id ID) (*Params, error) {
	registryMtx.RLock()
	defer registryMtx.RUnlock()

	params, ok := registered[id]
	if !ok {
		return nil, fmt.Errorf("%w: %v", ErrUnknownNet, id)
	}
	return params, nil
}

// Registered returns the parameters of every registered network ordered by
// id.
func Registered() []*Params {
	registryMtx.RLock()
	defer registryMtx.RUnlock()

	nets := make([]*Params, 0, len(registered))
	for _, p := range registered {
		nets = append(nets, p)
	}
	sort.Slice(nets, func(i, j int) bool {
		return nets[i].ID < nets[j].ID
	})
	return nets
}

func init() {
	mustRegister(&MainNetParams)
	mustRegister(&TestNetParams)
	mustRegister(&RegressionNetParams)
}
