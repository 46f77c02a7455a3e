/*
Package receiver ingests OSC over UDP into a host application's per-cycle
event stream.

A Receiver binds one socket and bridges its blocking reads into the host
cycle in one of two ways:

	Cooperative  a Poller keeps at most one receive in flight on an Executor
	             and hands its result over on the next Update.
	Threaded     a Reader loops on its own goroutine and pushes into the
	             Inbox of a Hub; Update drains the Inbox.

Every datagram is decoded with package osc and flattened, so bundles arrive
as their messages in depth-first order. Messages reach the host through a
Bridge, one Event per message.
*/
package receiver
