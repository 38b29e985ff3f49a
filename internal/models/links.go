package models

import "fmt"

// LinkState tells whether a link between two rooms can be traversed.
type LinkState int

const (
	LinkOpen LinkState = iota
	LinkClosed
	LinkLocked
)

var linkStateNames = map[LinkState]string{
	LinkOpen:   "OPEN",
	LinkClosed: "CLOSED",
	LinkLocked: "LOCKED",
}

func (s LinkState) String() string {
	if name, ok := linkStateNames[s]; ok {
		return name
	}
	return fmt.Sprintf("LinkState(%d)", int(s))
}

// ParseLinkState converts a name such as "OPEN" into a LinkState.
func ParseLinkState(name string) (LinkState, error) {
	for s, n := range linkStateNames {
		if n == name {
			return s, nil
		}
	}
	return 0, fmt.Errorf("unknown link state %q", name)
}

func (s LinkState) MarshalText() ([]byte, error) {
	name, ok := linkStateNames[s]
	if !ok {
		return nil, fmt.Errorf("unknown link state %d", int(s))
	}
	return []byte(name), nil
}

func (s *LinkState) UnmarshalText(text []byte) error {
	v, err := ParseLinkState(string(text))
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// LinkBehavior tells whether a link keeps its state or can be toggled by
// one of its trigger items.
type LinkBehavior int

const (
	LinkConstant LinkBehavior = iota
	LinkToggle
)

var linkBehaviorNames = map[LinkBehavior]string{
	LinkConstant: "CONSTANT",
	LinkToggle:   "TOGGLE",
}

func (b LinkBehavior) String() string {
	if name, ok := linkBehaviorNames[b]; ok {
		return name
	}
	return fmt.Sprintf("LinkBehavior(%d)", int(b))
}

// ParseLinkBehavior converts a name such as "TOGGLE" into a LinkBehavior.
func ParseLinkBehavior(name string) (LinkBehavior, error) {
	for b, n := range linkBehaviorNames {
		if n == name {
			return b, nil
		}
	}
	return 0, fmt.Errorf("unknown link behavior %q", name)
}

func (b LinkBehavior) MarshalText() ([]byte, error) {
	name, ok := linkBehaviorNames[b]
	if !ok {
		return nil, fmt.Errorf("unknown link behavior %d", int(b))
	}
	return []byte(name), nil
}

func (b *LinkBehavior) UnmarshalText(text []byte) error {
	v, err := ParseLinkBehavior(string(text))
	if err != nil {
		return err
	}
	*b = v
	return nil
}
