package sse

import "photomotion/internal/domain"

// MachineObserver forwards workflow events to the hub. It satisfies the
// workflow observer contract: callbacks never block because Publish drops
// events for slow subscribers.
type MachineObserver struct {
	hub *Hub
}

func NewMachineObserver(hub *Hub) *MachineObserver {
	return &MachineObserver{hub: hub}
}

func (o *MachineObserver) StateChanged(from, to domain.WorkflowState) {
	o.hub.Publish(Event{Type: "state", State: string(to)})
}

func (o *MachineObserver) Progress(message string, pollCount int) {
	o.hub.Publish(Event{Type: "progress", Message: message, PollCount: pollCount})
}
