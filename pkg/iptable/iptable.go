package iptable

import (
	"math"
	"math/big"
	"net/netip"

	"github.com/cockroachdb/errors"
	"github.com/hansthienpondt/nipam/pkg/table"
	"github.com/henderiw/sequence/pkg/idxtable"
	"go4.org/netipx"
	"k8s.io/apimachinery/pkg/labels"
)

type IPTable interface {
	Get(addr string) (table.Route, error)
	Claim(addr string, d table.Route) error
	Release(addr string) error
	Update(addr string, d table.Route) error

	Count() int
	Has(addr string) bool

	IsFree(addr string) bool
	FindFree() (netip.Addr, error)

	GetAll() table.Routes
	GetRange(r netipx.IPRange) table.Routes
	GetByLabel(selector labels.Selector) table.Routes
}

func New(from, to netip.Addr) (IPTable, error) {
	ipRange := netipx.IPRangeFrom(from, to)
	if !ipRange.IsValid() {
		return nil, errors.Newf("invalid ip range from %s to %s", from, to)
	}
	size, ok := numIPs(from, to)
	if !ok {
		return nil, errors.Newf("ip range from %s to %s is too large", from, to)
	}
	t, err := idxtable.NewTable[table.Route](size, nil, nil)
	if err != nil {
		return nil, err
	}
	return &ipTable{
		table:   t,
		ipRange: ipRange,
	}, nil
}

type ipTable struct {
	table   idxtable.Table[table.Route]
	ipRange netipx.IPRange
}

func (r *ipTable) Get(addr string) (table.Route, error) {
	claimIP, err := r.validateIP(addr)
	if err != nil {
		return table.Route{}, err
	}
	return r.table.Get(calculateIndex(claimIP, r.ipRange.From()))
}

// Claim stores d under addr. The stored route always carries the host
// prefix of addr; only the labels and data of d are kept.
func (r *ipTable) Claim(addr string, d table.Route) error {
	claimIP, err := r.validateIP(addr)
	if err != nil {
		return err
	}
	if err := r.table.Claim(calculateIndex(claimIP, r.ipRange.From()), hostRoute(claimIP, d)); err != nil {
		return errors.Wrapf(err, "claim failed ip %s", addr)
	}
	return nil
}

func (r *ipTable) Release(addr string) error {
	claimIP, err := r.validateIP(addr)
	if err != nil {
		return err
	}
	return r.table.Release(calculateIndex(claimIP, r.ipRange.From()))
}

func (r *ipTable) Update(addr string, d table.Route) error {
	claimIP, err := r.validateIP(addr)
	if err != nil {
		return err
	}
	if err := r.table.Update(calculateIndex(claimIP, r.ipRange.From()), hostRoute(claimIP, d)); err != nil {
		return errors.Wrapf(err, "update failed ip %s", addr)
	}
	return nil
}

func (r *ipTable) Count() int {
	return r.table.Count()
}

func (r *ipTable) Has(addr string) bool {
	claimIP, err := r.validateIP(addr)
	if err != nil {
		return false
	}
	return r.table.Has(calculateIndex(claimIP, r.ipRange.From()))
}

func (r *ipTable) IsFree(addr string) bool {
	claimIP, err := r.validateIP(addr)
	if err != nil {
		return false
	}
	return r.table.IsFree(calculateIndex(claimIP, r.ipRange.From()))
}

func (r *ipTable) FindFree() (netip.Addr, error) {
	id, err := r.table.FindFree()
	if err != nil {
		return netip.Addr{}, err
	}
	return calculateIPFromIndex(r.ipRange.From(), id), nil
}

// GetAll returns the claimed routes in ascending address order.
func (r *ipTable) GetAll() table.Routes {
	return routesOf(r.table.Iterate(), labels.Everything())
}

// GetRange returns the claimed routes whose address falls within ipRange,
// in ascending address order.
func (r *ipTable) GetRange(ipRange netipx.IPRange) table.Routes {
	from, to := ipRange.From(), ipRange.To()
	if !ipRange.IsValid() || to.Less(r.ipRange.From()) || r.ipRange.To().Less(from) {
		return table.Routes{}
	}
	if from.Less(r.ipRange.From()) {
		from = r.ipRange.From()
	}
	if r.ipRange.To().Less(to) {
		to = r.ipRange.To()
	}
	start := r.ipRange.From()
	return routesOf(r.table.IterateRange(calculateIndex(from, start), calculateIndex(to, start)), labels.Everything())
}

func (r *ipTable) GetByLabel(selector labels.Selector) table.Routes {
	return routesOf(r.table.Iterate(), selector)
}

func routesOf(iter *idxtable.Iterator[table.Route], selector labels.Selector) table.Routes {
	routes := table.Routes{}
	for iter.Next() {
		if route := iter.Value(); selector.Matches(route.Labels()) {
			routes = append(routes, route)
		}
	}
	return routes
}

func hostRoute(ip netip.Addr, d table.Route) table.Route {
	return table.NewRoute(netip.PrefixFrom(ip, ip.BitLen()), d.Labels(), d.GetData())
}

func (r *ipTable) validateIP(addr string) (netip.Addr, error) {
	claimIP, err := netip.ParseAddr(addr)
	if err != nil {
		return netip.Addr{}, errors.Wrapf(err, "ip address %s is invalid", addr)
	}
	if !r.ipRange.Contains(claimIP) {
		return netip.Addr{}, errors.Wrapf(idxtable.ErrOutOfRange, "ip address %s, does not fit in the range from %s to %s", addr, r.ipRange.From().String(), r.ipRange.To().String())
	}
	return claimIP, nil
}

func calculateIndex(ip, start netip.Addr) int64 {
	return new(big.Int).Sub(ipToInt(ip), ipToInt(start)).Int64()
}

// numIPs reports false when the range holds more addresses than an int64
// index can address.
func numIPs(startIP, endIP netip.Addr) (int64, bool) {
	diff := new(big.Int).Sub(ipToInt(endIP), ipToInt(startIP))
	if !diff.IsInt64() || diff.Int64() == math.MaxInt64 {
		return 0, false
	}
	return diff.Int64() + 1, true
}

func ipToInt(ip netip.Addr) *big.Int {
	bytes := ip.As16()
	return new(big.Int).SetBytes(bytes[:])
}

func calculateIPFromIndex(startIP netip.Addr, id int64) netip.Addr {
	ipInt := new(big.Int).Add(ipToInt(startIP), big.NewInt(id))

	var ip16 [16]byte
	ipInt.FillBytes(ip16[:])

	if startIP.Is4() {
		return netip.AddrFrom4(netip.AddrFrom16(ip16).As4())
	}
	return netip.AddrFrom16(ip16)
}
