package engine

import "fmt"

// Node is an application-graph record: the three fields from spec.md §3.
type Node struct {
	Func     Atom
	Arg      Atom
	Refcount uint32
}

// Sanity-mode sentinel refcounts from spec.md §7, used to catch
// use-after-free and out-of-bounds references when Pool.sanity is set.
const (
	freeSentinel = 0x8888
	endSentinel  = 0x9e37
)

// Pool is a fixed-capacity arena of application nodes with a free-list
// threaded through each free node's Func field, ported from mini-sk.c's
// apps[]/app_freelist/init_apps/alloc_app/free_app.
//
// Node indices run 0..capacity-1; index capacity is an unused sentinel
// slot so that freeHead == capacity unambiguously means "exhausted",
// exactly as the C original's INDEX_TO_ATOM(MAX_APPS) sentinel does.
type Pool struct {
	nodes     []Node
	capacity  uint32
	freeHead  NodeRef
	live      uint32
	highWater uint32
	sanity    bool
}

// NewPool builds a pool that can hold up to capacity live nodes.
func NewPool(capacity uint32, sanity bool) *Pool {
	p := &Pool{
		nodes:    make([]Node, capacity+1),
		capacity: capacity,
		sanity:   sanity,
	}
	p.Init()
	return p
}

// Init threads the free-list through every slot and resets the counters,
// mirroring mini-sk.c's init_apps.
func (p *Pool) Init() {
	for i := uint32(0); i < p.capacity; i++ {
		p.nodes[i] = Node{Func: NodeAtom(NodeRef(i + 1))}
		if p.sanity {
			p.nodes[i].Refcount = freeSentinel
		}
	}
	p.freeHead = 0
	p.live = 0
	p.highWater = 0
	if p.sanity {
		p.nodes[p.capacity].Refcount = endSentinel
	}
}

// Capacity returns the pool's maximum number of simultaneously live nodes.
func (p *Pool) Capacity() uint32 { return p.capacity }

// Live returns the current number of allocated (non-free) nodes.
func (p *Pool) Live() uint32 { return p.live }

// HighWater returns the largest value Live has ever reached.
func (p *Pool) HighWater() uint32 { return p.highWater }

// Exhausted reports whether the free-list is empty.
func (p *Pool) Exhausted() bool { return p.freeHead == NodeRef(p.capacity) }

func (p *Pool) at(r NodeRef) *Node { return &p.nodes[r] }

// Node exposes a live node's fields for external readers (the printer and
// parser need this; internal engine code prefers the unexported at()).
func (p *Pool) Node(r NodeRef) Node { return *p.at(r) }

// Alloc pops the free-list head, installs fn/arg with refcount 1, and
// returns its reference. Exhaustion is a FatalError per spec.md §7.
func (p *Pool) Alloc(fn, arg Atom) (NodeRef, error) {
	if p.Exhausted() {
		return 0, &FatalError{Op: "alloc", Msg: "out of app space"}
	}
	r := p.freeHead
	n := p.at(r)
	p.freeHead = n.Func.Node()
	n.Func = fn
	n.Arg = arg
	n.Refcount = 1
	p.live++
	if p.live > p.highWater {
		p.highWater = p.live
	}
	return r, nil
}

// free pushes r back onto the free-list. It does not touch r's children;
// releasing them is Release's responsibility.
func (p *Pool) free(r NodeRef) {
	n := p.at(r)
	n.Func = NodeAtom(p.freeHead)
	p.freeHead = r
	p.live--
	if p.sanity {
		n.Refcount = freeSentinel
	}
}

// CheckInvariants walks the whole arena and reports the first violation of
// the pool's structural invariants: in sanity mode every free-list slot
// carries freeSentinel, every slot reachable from root has a positive refcount and
// is not on the free-list, and the free-list itself is a closed cycle-free
// chain terminating at the capacity sentinel. It is O(capacity) and is
// meant for tests and debug tooling, not the reduction fast path.
func (p *Pool) CheckInvariants(root Atom) error {
	onFreeList := make(map[NodeRef]bool)
	seen := map[NodeRef]bool{}
	for r := p.freeHead; r != NodeRef(p.capacity); {
		if seen[r] {
			return fmt.Errorf("free-list cycle at node %d", r)
		}
		seen[r] = true
		onFreeList[r] = true
		if p.sanity && p.nodes[r].Refcount != freeSentinel {
			return fmt.Errorf("free node %d missing sentinel refcount: %d", r, p.nodes[r].Refcount)
		}
		r = p.nodes[r].Func.Node()
	}
	if uint32(len(onFreeList)) != p.capacity-p.live {
		return fmt.Errorf("free-list length %d does not match capacity-live %d", len(onFreeList), p.capacity-p.live)
	}

	visited := map[NodeRef]bool{}
	var walk func(a Atom) error
	walk = func(a Atom) error {
		if a.IsLiteral() {
			return nil
		}
		r := a.Node()
		if onFreeList[r] {
			return fmt.Errorf("live atom references free node %d", r)
		}
		if visited[r] {
			return nil
		}
		visited[r] = true
		n := p.at(r)
		if n.Refcount == 0 {
			return fmt.Errorf("reachable node %d has zero refcount", r)
		}
		if err := walk(n.Func); err != nil {
			return err
		}
		return walk(n.Arg)
	}
	return walk(root)
}
