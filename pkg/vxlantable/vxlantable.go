package vxlantable

import (
	"github.com/cockroachdb/errors"
	"github.com/henderiw/sequence/pkg/idxtable"
	"k8s.io/apimachinery/pkg/labels"
)

type VXLANTable interface {
	Get(id int64) (labels.Set, error)
	Claim(id int64, d labels.Set) error
	ClaimDynamic(d labels.Set) (int64, error)
	Release(id int64) error
	Update(id int64, d labels.Set) error

	Count() int
	Has(id int64) bool

	IsFree(id int64) bool
	FindFree() (int64, error)

	GetAll() map[int64]labels.Set
	GetRange(from, to int64) map[int64]labels.Set
}

// New returns a table for the VNIs [offset, max].
func New(offset, max int64) (VXLANTable, error) {
	if max < offset {
		return nil, errors.Newf("invalid vni range %d-%d", offset, max)
	}
	t, err := idxtable.NewTable[labels.Set](
		max-offset+1,
		map[int64]labels.Set{},
		nil,
	)
	if err != nil {
		return nil, err
	}
	return &vxlanTable{
		table:  t,
		offset: offset,
		max:    max,
	}, nil

}

type vxlanTable struct {
	table  idxtable.Table[labels.Set]
	offset int64
	max    int64
}

func (r *vxlanTable) Get(id int64) (labels.Set, error) {
	d, err := r.table.Get(r.calculateIndex(id))
	if err != nil {
		return nil, errors.Wrapf(err, "vni %d", id)
	}
	return d, nil
}

func (r *vxlanTable) Claim(id int64, d labels.Set) error {
	if err := r.table.Claim(r.calculateIndex(id), d); err != nil {
		return errors.Wrapf(err, "vni %d", id)
	}
	return nil
}

func (r *vxlanTable) ClaimDynamic(d labels.Set) (int64, error) {
	id, err := r.table.ClaimDynamic(d)
	if err != nil {
		return -1, err
	}
	return id + r.offset, nil
}

func (r *vxlanTable) Release(id int64) error {
	if err := r.table.Release(r.calculateIndex(id)); err != nil {
		return errors.Wrapf(err, "vni %d", id)
	}
	return nil
}

func (r *vxlanTable) Update(id int64, d labels.Set) error {
	if err := r.table.Update(r.calculateIndex(id), d); err != nil {
		return errors.Wrapf(err, "vni %d", id)
	}
	return nil
}

func (r *vxlanTable) Count() int {
	return r.table.Count()
}

func (r *vxlanTable) Has(id int64) bool {
	return r.table.Has(r.calculateIndex(id))
}

func (r *vxlanTable) IsFree(id int64) bool {
	return r.table.IsFree(r.calculateIndex(id))
}

func (r *vxlanTable) FindFree() (int64, error) {
	id, err := r.table.FindFree()
	if err != nil {
		return -1, err
	}
	return id + r.offset, nil
}

func (r *vxlanTable) GetAll() map[int64]labels.Set {
	return r.rebase(r.table.GetAll())
}

func (r *vxlanTable) GetRange(from, to int64) map[int64]labels.Set {
	return r.rebase(r.table.GetRange(r.calculateIndex(from), r.calculateIndex(to)))
}

// rebase turns table indexes back into VNIs.
func (r *vxlanTable) rebase(entries map[int64]labels.Set) map[int64]labels.Set {
	out := make(map[int64]labels.Set, len(entries))
	for id, d := range entries {
		out[id+r.offset] = d
	}
	return out
}

func (r *vxlanTable) calculateIndex(id int64) int64 {
	return id - r.offset
}
