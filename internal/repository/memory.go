package repository

import (
	"context"
	"sync"
	"time"

	"github.com/apostol1s/technico-web/internal/domain"
)

// MemoryStore backs all three repositories with one mutex-guarded arena so
// cascade deletes stay atomic across entities. It supports the unit tests and
// DB-less dev runs. Children-by-parent indexes replace the relational
// foreign keys.
type MemoryStore struct {
	mu sync.RWMutex

	owners     map[int64]*domain.Owner
	properties map[int64]*domain.Property
	repairs    map[int64]*domain.Repair

	propertiesByOwner map[int64]map[int64]struct{}
	repairsByProperty map[int64]map[int64]struct{}

	nextOwnerID    int64
	nextPropertyID int64
	nextRepairID   int64
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		owners:            map[int64]*domain.Owner{},
		properties:        map[int64]*domain.Property{},
		repairs:           map[int64]*domain.Repair{},
		propertiesByOwner: map[int64]map[int64]struct{}{},
		repairsByProperty: map[int64]map[int64]struct{}{},
	}
}

func (s *MemoryStore) Owners() OwnersRepository         { return &memoryOwners{s} }
func (s *MemoryStore) Properties() PropertiesRepository { return &memoryProperties{s} }
func (s *MemoryStore) Repairs() RepairsRepository       { return &memoryRepairs{s} }

func cloneOwner(o *domain.Owner) *domain.Owner {
	c := *o
	return &c
}

func cloneProperty(p *domain.Property) *domain.Property {
	c := *p
	return &c
}

func cloneRepair(r *domain.Repair) *domain.Repair {
	c := *r
	if r.AcceptanceStatus != nil {
		v := *r.AcceptanceStatus
		c.AcceptanceStatus = &v
	}
	c.SubmissionDate = cloneDateTime(r.SubmissionDate)
	c.ScheduledStartDate = cloneDateTime(r.ScheduledStartDate)
	c.ScheduledEndDate = cloneDateTime(r.ScheduledEndDate)
	c.ActualStartDate = cloneDateTime(r.ActualStartDate)
	c.ActualEndDate = cloneDateTime(r.ActualEndDate)
	return &c
}

func cloneDateTime(d *domain.DateTime) *domain.DateTime {
	if d == nil {
		return nil
	}
	return domain.NewDateTime(d.Time)
}

// --- Owners ---

type memoryOwners struct {
	s *MemoryStore
}

func (r *memoryOwners) Create(_ context.Context, owner *domain.Owner) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, o := range r.s.owners {
		if o.TaxID == owner.TaxID || o.Email == owner.Email {
			return 0, domain.ErrConflict
		}
	}

	r.s.nextOwnerID++
	owner.ID = r.s.nextOwnerID
	r.s.owners[owner.ID] = cloneOwner(owner)
	r.s.propertiesByOwner[owner.ID] = map[int64]struct{}{}
	return owner.ID, nil
}

func (r *memoryOwners) Save(_ context.Context, owner *domain.Owner) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.owners[owner.ID]; !ok {
		return domain.ErrNotFound
	}
	r.s.owners[owner.ID] = cloneOwner(owner)
	return nil
}

func (r *memoryOwners) FindByID(_ context.Context, id int64) (*domain.Owner, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	o, ok := r.s.owners[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return cloneOwner(o), nil
}

func (r *memoryOwners) FindByTaxID(_ context.Context, taxID string) (*domain.Owner, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, o := range r.s.owners {
		if o.TaxID == taxID {
			return cloneOwner(o), nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *memoryOwners) FindByEmail(_ context.Context, email string) (*domain.Owner, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, o := range r.s.owners {
		if o.Email == email {
			return cloneOwner(o), nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *memoryOwners) FindByCredentials(_ context.Context, email, password string) (*domain.Owner, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, o := range r.s.owners {
		if o.Email == email && o.Password == password && !o.Deleted {
			return cloneOwner(o), nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *memoryOwners) FindAll(_ context.Context) ([]*domain.Owner, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]*domain.Owner, 0, len(r.s.owners))
	for id := int64(1); id <= r.s.nextOwnerID; id++ {
		if o, ok := r.s.owners[id]; ok {
			out = append(out, cloneOwner(o))
		}
	}
	return out, nil
}

func (r *memoryOwners) DeleteCascade(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.owners[id]; !ok {
		return domain.ErrNotFound
	}
	for propertyID := range r.s.propertiesByOwner[id] {
		r.s.removePropertyLocked(propertyID)
	}
	delete(r.s.propertiesByOwner, id)
	delete(r.s.owners, id)
	return nil
}

// removePropertyLocked detaches the property from its owner's index and
// removes its repairs. Callers hold the write lock.
func (s *MemoryStore) removePropertyLocked(propertyID int64) {
	p, ok := s.properties[propertyID]
	if !ok {
		return
	}
	for repairID := range s.repairsByProperty[propertyID] {
		delete(s.repairs, repairID)
	}
	delete(s.repairsByProperty, propertyID)
	if idx, ok := s.propertiesByOwner[p.OwnerID]; ok {
		delete(idx, propertyID)
	}
	delete(s.properties, propertyID)
}

// --- Properties ---

type memoryProperties struct {
	s *MemoryStore
}

func (r *memoryProperties) Create(_ context.Context, property *domain.Property) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	owner, ok := r.s.owners[property.OwnerID]
	if !ok {
		return 0, domain.ErrNotFound
	}
	for _, p := range r.s.properties {
		if p.ParcelID == property.ParcelID {
			return 0, domain.ErrConflict
		}
	}

	r.s.nextPropertyID++
	property.ID = r.s.nextPropertyID
	property.OwnerTaxID = owner.TaxID
	r.s.properties[property.ID] = cloneProperty(property)
	r.s.propertiesByOwner[property.OwnerID][property.ID] = struct{}{}
	r.s.repairsByProperty[property.ID] = map[int64]struct{}{}
	return property.ID, nil
}

func (r *memoryProperties) Save(_ context.Context, property *domain.Property) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.properties[property.ID]; !ok {
		return domain.ErrNotFound
	}
	r.s.properties[property.ID] = cloneProperty(property)
	return nil
}

func (r *memoryProperties) FindByID(_ context.Context, id int64) (*domain.Property, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	p, ok := r.s.properties[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return cloneProperty(p), nil
}

func (r *memoryProperties) FindByParcelID(_ context.Context, parcelID string) (*domain.Property, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, p := range r.s.properties {
		if p.ParcelID == parcelID {
			return cloneProperty(p), nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *memoryProperties) FindByOwnerTaxID(ctx context.Context, taxID string) ([]*domain.Property, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, o := range r.s.owners {
		if o.TaxID == taxID {
			return r.byOwnerLocked(o.ID), nil
		}
	}
	return []*domain.Property{}, nil
}

func (r *memoryProperties) FindByOwnerID(_ context.Context, ownerID int64) ([]*domain.Property, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	return r.byOwnerLocked(ownerID), nil
}

func (r *memoryProperties) byOwnerLocked(ownerID int64) []*domain.Property {
	out := []*domain.Property{}
	for id := int64(1); id <= r.s.nextPropertyID; id++ {
		if p, ok := r.s.properties[id]; ok && p.OwnerID == ownerID {
			out = append(out, cloneProperty(p))
		}
	}
	return out
}

func (r *memoryProperties) FindAll(_ context.Context) ([]*domain.Property, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := []*domain.Property{}
	for id := int64(1); id <= r.s.nextPropertyID; id++ {
		if p, ok := r.s.properties[id]; ok {
			out = append(out, cloneProperty(p))
		}
	}
	return out, nil
}

func (r *memoryProperties) DeleteCascade(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.properties[id]; !ok {
		return domain.ErrNotFound
	}
	r.s.removePropertyLocked(id)
	return nil
}

// --- Repairs ---

type memoryRepairs struct {
	s *MemoryStore
}

func (r *memoryRepairs) Create(_ context.Context, repair *domain.Repair) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.properties[repair.PropertyID]; !ok {
		return 0, domain.ErrNotFound
	}

	r.s.nextRepairID++
	repair.ID = r.s.nextRepairID
	r.s.repairs[repair.ID] = cloneRepair(repair)
	r.s.repairsByProperty[repair.PropertyID][repair.ID] = struct{}{}
	return repair.ID, nil
}

func (r *memoryRepairs) Save(_ context.Context, repair *domain.Repair) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.repairs[repair.ID]; !ok {
		return domain.ErrNotFound
	}
	r.s.repairs[repair.ID] = cloneRepair(repair)
	return nil
}

func (r *memoryRepairs) FindByID(_ context.Context, id int64) (*domain.Repair, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	rp, ok := r.s.repairs[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return cloneRepair(rp), nil
}

func (r *memoryRepairs) FindByPropertyID(_ context.Context, propertyID int64) ([]*domain.Repair, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := []*domain.Repair{}
	for id := int64(1); id <= r.s.nextRepairID; id++ {
		if rp, ok := r.s.repairs[id]; ok && rp.PropertyID == propertyID {
			out = append(out, cloneRepair(rp))
		}
	}
	return out, nil
}

func (r *memoryRepairs) FindByDate(_ context.Context, at time.Time) ([]*domain.Repair, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := []*domain.Repair{}
	for id := int64(1); id <= r.s.nextRepairID; id++ {
		rp, ok := r.s.repairs[id]
		if !ok || rp.ScheduledStartDate == nil || rp.ScheduledEndDate == nil {
			continue
		}
		if !rp.ScheduledStartDate.After(at) && !rp.ScheduledEndDate.Before(at) {
			out = append(out, cloneRepair(rp))
		}
	}
	return out, nil
}

func (r *memoryRepairs) FindAll(_ context.Context) ([]*domain.Repair, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := []*domain.Repair{}
	for id := int64(1); id <= r.s.nextRepairID; id++ {
		if rp, ok := r.s.repairs[id]; ok {
			out = append(out, cloneRepair(rp))
		}
	}
	return out, nil
}

func (r *memoryRepairs) Delete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	rp, ok := r.s.repairs[id]
	if !ok {
		return domain.ErrNotFound
	}
	if idx, ok := r.s.repairsByProperty[rp.PropertyID]; ok {
		delete(idx, id)
	}
	delete(r.s.repairs, id)
	return nil
}
