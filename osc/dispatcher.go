package osc

import (
	"fmt"
	"strings"
)

// Method is an interface for OSC Methods.
type Method interface {
	HandleMessage(msg *Message)
}

// MethodFunc implements the Method interface. Type definition for an OSC Method function.
type MethodFunc func(msg *Message)

// HandleMessage calls itself with the given OSC Message. Implements the Method interface.
func (f MethodFunc) HandleMessage(msg *Message) {
	f(msg)
}

// Dispatcher handles the dispatching of received OSC Packets to Methods for their given Address.
type Dispatcher struct {
	methods map[string]Method
}

// NewDispatcher returns an empty Dispatcher.
func NewDispatcher() *Dispatcher {
	return &Dispatcher{methods: make(map[string]Method)}
}

// AddMethod adds a new OSC Method for the given OSC Address.
func (d *Dispatcher) AddMethod(addr string, method Method) error {
	if d.methods == nil {
		d.methods = make(map[string]Method)
	}

	if strings.ContainsAny(addr, "*?,[]{}# ") {
		return fmt.Errorf("AddMethod: OSC Method may not contain any characters in \"*?,[]{}# \"")
	}

	if _, ok := d.methods[addr]; ok {
		return fmt.Errorf("AddMethod: OSC Method exists already")
	}

	d.methods[addr] = method
	return nil
}

// AddMethodFunc allows you to just pass a MethodFunc.
func (d *Dispatcher) AddMethodFunc(addr string, method MethodFunc) error {
	return d.AddMethod(addr, method)
}

// Dispatch hands msg to every Method whose address matches the message's
// address pattern and reports how many Methods were called.
func (d *Dispatcher) Dispatch(msg *Message) (int, error) {
	r, err := getRegEx(msg.Address)
	if err != nil {
		return 0, fmt.Errorf("Dispatch: invalid address pattern %q: %w", msg.Address, err)
	}
	// The OSC Spec mentions that each address is divided into parts, so we could use a radix tree here.
	// For now, I'm gonna hope that being clever is enough
	r.Longest()
	aParts := strings.Count(msg.Address, "/")
	called := 0
	for addr, method := range d.methods {
		if aParts == strings.Count(addr, "/") && r.FindString(addr) == addr {
			method.HandleMessage(msg)
			called++
		}
	}
	return called, nil
}

// DispatchPacket dispatches every message of p in flattened order. Bundle
// time tags are not honored; elements are delivered immediately.
func (d *Dispatcher) DispatchPacket(p Packet) error {
	msgs, err := Flatten(p)
	if err != nil {
		return err
	}
	for _, msg := range msgs {
		if _, err := d.Dispatch(msg); err != nil {
			return err
		}
	}
	return nil
}
