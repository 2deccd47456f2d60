// Package feed implements the in-process change feed: every committed
// write to jobs, messages, or notifications is published as a typed
// event, and open sessions subscribe with a row filter to receive
// inserts live. Subscriptions start from "now"; there is no replay.
package feed

import (
	"sync"
)

type Entity string

const (
	EntityJob          Entity = "job"
	EntityMessage      Entity = "message"
	EntityNotification Entity = "notification"
)

type Op string

const (
	OpInsert Op = "insert"
	OpUpdate Op = "update"
)

type Event struct {
	Entity Entity      `json:"entity"`
	Op     Op          `json:"op"`
	Row    interface{} `json:"row"`
}

// JobScoped is implemented by rows that belong to a single job.
type JobScoped interface {
	JobScope() int
}

// RecipientScoped is implemented by rows addressed to one account.
type RecipientScoped interface {
	RecipientScope() int
}

type Filter func(Event) bool

// FilterEntity matches events for one entity type.
func FilterEntity(entity Entity) Filter {
	return func(e Event) bool {
		return e.Entity == entity
	}
}

// FilterJob matches events whose row belongs to the given job.
func FilterJob(jobID int) Filter {
	return func(e Event) bool {
		scoped, ok := e.Row.(JobScoped)
		return ok && scoped.JobScope() == jobID
	}
}

// FilterRecipient matches events whose row is addressed to the given account.
func FilterRecipient(accountID int) Filter {
	return func(e Event) bool {
		scoped, ok := e.Row.(RecipientScoped)
		return ok && scoped.RecipientScope() == accountID
	}
}

func And(filters ...Filter) Filter {
	return func(e Event) bool {
		for _, f := range filters {
			if !f(e) {
				return false
			}
		}
		return true
	}
}

const subscriptionBuffer = 64

type Subscription struct {
	C      <-chan Event
	id     int
	broker *Broker
}

func (s *Subscription) Close() {
	s.broker.unsubscribe(s.id)
}

type subscriber struct {
	ch     chan Event
	filter Filter
}

// Broker fans committed events out to subscribers. Publish never
// blocks: a subscriber whose buffer is full misses the event, which is
// acceptable for a live feed with no replay guarantee.
type Broker struct {
	mu     sync.RWMutex
	nextID int
	subs   map[int]*subscriber
}

func NewBroker() *Broker {
	return &Broker{subs: make(map[int]*subscriber)}
}

func (b *Broker) Subscribe(filter Filter) *Subscription {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextID++
	id := b.nextID

	sub := &subscriber{
		ch:     make(chan Event, subscriptionBuffer),
		filter: filter,
	}
	b.subs[id] = sub

	return &Subscription{C: sub.ch, id: id, broker: b}
}

func (b *Broker) unsubscribe(id int) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if sub, ok := b.subs[id]; ok {
		delete(b.subs, id)
		close(sub.ch)
	}
}

// Publish delivers an event to every matching subscriber. Callers must
// only publish after the backing write has committed, so a subscriber
// never sees a change that was rolled back.
func (b *Broker) Publish(e Event) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	for _, sub := range b.subs {
		if sub.filter != nil && !sub.filter(e) {
			continue
		}
		select {
		case sub.ch <- e:
		default:
		}
	}
}

// Close tears down every open subscription.
func (b *Broker) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()

	for id, sub := range b.subs {
		delete(b.subs, id)
		close(sub.ch)
	}
}

// SubscriberCount reports the number of open subscriptions.
func (b *Broker) SubscriberCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs)
}
