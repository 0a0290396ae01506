package style

import (
	"strings"
	"time"

	"github.com/stateforward/go-kenburns/loop"
	"github.com/stateforward/go-kenburns/pkg/set"
)

// Change describes one property write on a Node.
type Change struct {
	Target   *Node
	Property string
	Old      string
	New      string
	At       time.Time
}

type listener struct {
	id uint64
	fn func(TransitionEvent)
}

// Node is an in-memory Element. A change to a property named by a positive
// transition declaration schedules one TransitionEvent after the declared
// duration. Changing the property again, with or without a declaration,
// cancels the pending event. Prefixed and unprefixed names are aliases.
//
// Node is not safe for concurrent use; drive it from the scheduler.
type Node struct {
	scheduler  loop.Scheduler
	parent     *Node
	children   []*Node
	properties map[string]string
	markers    set.Set[string]
	listeners  []listener
	nextId     uint64
	pending    map[string]loop.Timer
	detached   bool
	changes    func(Change)
}

func NewNode(scheduler loop.Scheduler, markers ...string) *Node {
	return &Node{
		scheduler:  scheduler,
		properties: map[string]string{},
		markers:    set.New(markers...),
		pending:    map[string]loop.Timer{},
	}
}

func (n *Node) Get(property string) string {
	return n.properties[Normalize(property)]
}

func (n *Node) Set(property, value string) {
	key := Normalize(property)
	old, ok := n.properties[key]
	if value == "" {
		delete(n.properties, key)
	} else {
		n.properties[key] = value
	}
	n.notify(Change{Target: n, Property: property, Old: old, New: value, At: n.scheduler.Now()})
	if key == "transition" {
		n.undeclared()
		return
	}
	if (ok && old == value) || (!ok && value == "") {
		return
	}
	if timer, ok := n.pending[key]; ok {
		timer.Stop()
		delete(n.pending, key)
	}
	name, duration, ok := n.declared(key)
	if !ok || n.detached {
		return
	}
	n.pending[key] = n.scheduler.After(duration, func() {
		delete(n.pending, key)
		n.emit(TransitionEvent{Target: n, Property: name, Elapsed: duration})
	})
}

// undeclared cancels pending completions whose property no longer has a
// positive transition declared.
func (n *Node) undeclared() {
	for key, timer := range n.pending {
		if _, _, ok := n.declared(key); ok {
			continue
		}
		timer.Stop()
		delete(n.pending, key)
	}
}

// declared finds the positive transition declared for key.
func (n *Node) declared(key string) (string, time.Duration, bool) {
	declaration := n.properties["transition"]
	for _, item := range strings.Split(declaration, ",") {
		fields := strings.Fields(item)
		if len(fields) < 2 {
			continue
		}
		if fields[0] != "all" && Normalize(fields[0]) != key {
			continue
		}
		duration, err := time.ParseDuration(fields[1])
		if err != nil || duration <= 0 {
			return "", 0, false
		}
		return fields[0], duration, true
	}
	return "", 0, false
}

func (n *Node) emit(event TransitionEvent) {
	listeners := append([]listener(nil), n.listeners...)
	for _, listener := range listeners {
		listener.fn(event)
	}
}

func (n *Node) notify(change Change) {
	for node := n; node != nil; node = node.parent {
		if node.changes != nil {
			node.changes(change)
		}
	}
}

func (n *Node) AddMarker(markers ...string) {
	n.markers.Add(markers...)
}

func (n *Node) RemoveMarker(markers ...string) {
	n.markers.Remove(markers...)
}

func (n *Node) HasMarker(marker string) bool {
	return n.markers.Contains(marker)
}

func (n *Node) Markers() []string {
	return set.Sorted(n.markers)
}

func (n *Node) Append(markers ...string) Element {
	child := NewNode(n.scheduler, markers...)
	child.parent = n
	n.children = append(n.children, child)
	return child
}

func (n *Node) Children() []Element {
	children := make([]Element, 0, len(n.children))
	for _, child := range n.children {
		children = append(children, child)
	}
	return children
}

// Parent returns nil for a root or detached node.
func (n *Node) Parent() *Node {
	return n.parent
}

// Detach removes n from its parent and cancels pending notifications in its
// subtree.
func (n *Node) Detach() {
	if n.parent != nil {
		siblings := n.parent.children
		for i, sibling := range siblings {
			if sibling == n {
				n.parent.children = append(siblings[:i:i], siblings[i+1:]...)
				break
			}
		}
		n.parent = nil
	}
	n.cancel()
}

func (n *Node) cancel() {
	n.detached = true
	for key, timer := range n.pending {
		timer.Stop()
		delete(n.pending, key)
	}
	for _, child := range n.children {
		child.cancel()
	}
}

// Detached reports whether Detach was called on n or an ancestor.
func (n *Node) Detached() bool {
	return n.detached
}

func (n *Node) OnTransitionEnd(fn func(TransitionEvent)) func() {
	n.nextId++
	id := n.nextId
	n.listeners = append(n.listeners, listener{id: id, fn: fn})
	return func() {
		for i, listener := range n.listeners {
			if listener.id == id {
				n.listeners = append(n.listeners[:i:i], n.listeners[i+1:]...)
				return
			}
		}
	}
}

// Listeners returns the number of transition-end subscribers.
func (n *Node) Listeners() int {
	return len(n.listeners)
}

// OnChange observes property writes on n and its descendants.
func (n *Node) OnChange(fn func(Change)) {
	previous := n.changes
	n.changes = func(change Change) {
		if previous != nil {
			previous(change)
		}
		fn(change)
	}
}
