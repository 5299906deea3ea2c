package trace

import "time"

// Kind is the event type.
type Kind uint8

const (
	KindSpanBegin Kind = iota + 1
	KindSpanEnd
	KindPoint
)

var kindNames = [...]string{KindSpanBegin: "begin", KindSpanEnd: "end", KindPoint: "point"}

func (k Kind) String() string {
	if int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	return "unknown"
}

// Scope is the granularity of an event; smaller is coarser.
type Scope uint8

const (
	// ScopeCommand is one CLI command.
	ScopeCommand Scope = iota + 1
	// ScopeCompile is one pattern compilation.
	ScopeCompile
	// ScopeCall is one Format or Parse call.
	ScopeCall
	// ScopeNode is an event inside the parse of a single node.
	ScopeNode
)

var scopeNames = [...]string{ScopeCommand: "command", ScopeCompile: "compile", ScopeCall: "call", ScopeNode: "node"}

func (s Scope) String() string {
	if int(s) < len(scopeNames) && scopeNames[s] != "" {
		return scopeNames[s]
	}
	return "unknown"
}

// Event is one trace record. ParentID is zero for root spans.
type Event struct {
	Time     time.Time
	Seq      uint64
	Kind     Kind
	Scope    Scope
	SpanID   uint64
	ParentID uint64
	Name     string
	Detail   string
	Extra    map[string]string
}
