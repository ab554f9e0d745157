package policy

import (
	"context"
	"sync"

	"github.com/google/uuid"

	dErrors "policygate/pkg/domain-errors"
)

// InMemoryStore keeps dev and test setups lightweight. It intentionally
// favors clarity over performance.
type InMemoryStore struct {
	mu            sync.RWMutex
	policies      map[uuid.UUID]Policy
	coverages     map[uuid.UUID][]Coverage
	beneficiaries map[uuid.UUID][]Beneficiary
	drivers       map[uuid.UUID][]Driver
	vehicles      map[uuid.UUID]Vehicle
	properties    map[uuid.UUID]Property
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{
		policies:      make(map[uuid.UUID]Policy),
		coverages:     make(map[uuid.UUID][]Coverage),
		beneficiaries: make(map[uuid.UUID][]Beneficiary),
		drivers:       make(map[uuid.UUID][]Driver),
		vehicles:      make(map[uuid.UUID]Vehicle),
		properties:    make(map[uuid.UUID]Property),
	}
}

func (s *InMemoryStore) CreatePolicy(_ context.Context, p Policy) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.policies[p.ID]; exists {
		return dErrors.New(dErrors.CodeConflict, "policy already exists")
	}
	s.policies[p.ID] = p
	return nil
}

func (s *InMemoryStore) CreateCoverage(_ context.Context, c Coverage) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.policies[c.PolicyID]; !ok {
		return ErrNotFound
	}
	s.coverages[c.PolicyID] = append(s.coverages[c.PolicyID], c)
	return nil
}

func (s *InMemoryStore) CreateBeneficiary(_ context.Context, b Beneficiary) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.policies[b.PolicyID]; !ok {
		return ErrNotFound
	}
	s.beneficiaries[b.PolicyID] = append(s.beneficiaries[b.PolicyID], b)
	return nil
}

func (s *InMemoryStore) CreateDriver(_ context.Context, d Driver) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.policies[d.PolicyID]; !ok {
		return ErrNotFound
	}
	s.drivers[d.PolicyID] = append(s.drivers[d.PolicyID], d)
	return nil
}

func (s *InMemoryStore) CreateVehicle(_ context.Context, v Vehicle) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.policies[v.PolicyID]; !ok {
		return ErrNotFound
	}
	s.vehicles[v.PolicyID] = v
	return nil
}

func (s *InMemoryStore) CreateProperty(_ context.Context, p Property) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.policies[p.PolicyID]; !ok {
		return ErrNotFound
	}
	s.properties[p.PolicyID] = p
	return nil
}

func (s *InMemoryStore) GetPolicy(_ context.Context, id uuid.UUID) (Aggregate, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.policies[id]
	if !ok {
		return Aggregate{}, ErrNotFound
	}
	agg := Aggregate{
		Policy:        p,
		Coverages:     append([]Coverage{}, s.coverages[id]...),
		Beneficiaries: append([]Beneficiary{}, s.beneficiaries[id]...),
		Drivers:       append([]Driver{}, s.drivers[id]...),
	}
	if v, ok := s.vehicles[id]; ok {
		vehicle := v
		agg.Vehicle = &vehicle
	}
	if pr, ok := s.properties[id]; ok {
		property := pr
		agg.Property = &property
	}
	return agg, nil
}

func (s *InMemoryStore) FindByInsurerAndNumber(_ context.Context, insurerID, number string) (Policy, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, p := range s.policies {
		if p.InsurerID == insurerID && p.Number == number {
			return p, nil
		}
	}
	return Policy{}, ErrNotFound
}
