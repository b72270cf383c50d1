// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package notify broadcasts the outcome of every refresh to an optional
// delegate and to named-event subscribers.
//
// A [Hub] belongs to one config service instance; there is no process-wide
// bus. Observers are notified in a fixed order: the delegate first, then the
// subscribers of the event in subscription order.
package notify

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/MKhiriev/mission-control/internal/logger"
	"github.com/MKhiriev/mission-control/internal/utils"
	"github.com/MKhiriev/mission-control/models"
)

// listenBuffer is the capacity of channels returned by [Hub.Listen].
const listenBuffer = 16

// Delegate receives refresh outcomes as direct method calls.
type Delegate interface {
	// MissionControlDidRefreshConfig is called after a successful refresh.
	// old is nil on the first successful refresh.
	MissionControlDidRefreshConfig(old, new models.ConfigMap)

	// MissionControlDidFailRefreshingConfig is called after a failed refresh.
	MissionControlDidFailRefreshingConfig(err error)
}

// DelegateFuncs adapts a pair of functions to [Delegate]. Nil fields are
// skipped.
type DelegateFuncs struct {
	DidRefresh func(old, new models.ConfigMap)
	DidFail    func(err error)
}

func (d DelegateFuncs) MissionControlDidRefreshConfig(old, new models.ConfigMap) {
	if d.DidRefresh != nil {
		d.DidRefresh(old, new)
	}
}

func (d DelegateFuncs) MissionControlDidFailRefreshingConfig(err error) {
	if d.DidFail != nil {
		d.DidFail(err)
	}
}

// Subscription identifies a registered subscriber.
type Subscription struct {
	ID   string
	Name models.EventName
}

type subscriber struct {
	Subscription
	fn func(models.Notification)
}

// Hub fans refresh outcomes out to a delegate and subscribers.
//
// The hub holds an ordinary reference to the delegate; it stays registered
// until replaced or cleared with SetDelegate(nil).
type Hub struct {
	mu       sync.RWMutex
	delegate Delegate
	subs     []subscriber

	ids    utils.IDGenerator
	now    func() time.Time
	logger *logger.Logger
}

// NewHub returns an empty hub. log may be nil.
func NewHub(log *logger.Logger) *Hub {
	if log == nil {
		log = logger.Nop()
	}
	return &Hub{
		ids:    utils.NewUUIDGenerator(),
		now:    time.Now,
		logger: log.WithComponent("notify"),
	}
}

// SetDelegate registers d, replacing any previous delegate. Nil clears it.
func (h *Hub) SetDelegate(d Delegate) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.delegate = d
}

// Delegate returns the registered delegate or nil.
func (h *Hub) Delegate() Delegate {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.delegate
}

// Subscribe registers fn for the named event. fn runs on the goroutine that
// posts the event and must not block.
func (h *Hub) Subscribe(name models.EventName, fn func(models.Notification)) Subscription {
	sub := subscriber{
		Subscription: Subscription{ID: h.ids.Generate(), Name: name},
		fn:           fn,
	}

	h.mu.Lock()
	h.subs = append(h.subs, sub)
	h.mu.Unlock()

	h.logger.Debug().Str("id", sub.ID).Str("event", string(name)).Msg("subscribed")
	return sub.Subscription
}

// Unsubscribe removes the subscriber with the given ID and reports whether it
// was registered.
func (h *Hub) Unsubscribe(id string) bool {
	h.mu.Lock()
	defer h.mu.Unlock()

	idx := slices.IndexFunc(h.subs, func(s subscriber) bool { return s.ID == id })
	if idx < 0 {
		return false
	}
	h.subs = slices.Delete(h.subs, idx, idx+1)
	return true
}

// Listen returns a channel that receives every notification of the named
// event until ctx is done, after which the channel is closed. A listener
// that falls behind loses events rather than stalling the hub.
func (h *Hub) Listen(ctx context.Context, name models.EventName) <-chan models.Notification {
	ch := make(chan models.Notification, listenBuffer)

	var (
		mu     sync.Mutex
		closed bool
	)
	sub := h.Subscribe(name, func(n models.Notification) {
		mu.Lock()
		defer mu.Unlock()
		if closed {
			return
		}
		select {
		case ch <- n:
		default:
			h.logger.Warn().Str("event", string(name)).Msg("listener is full, dropping notification")
		}
	})

	go func() {
		<-ctx.Done()
		h.Unsubscribe(sub.ID)

		mu.Lock()
		closed = true
		close(ch)
		mu.Unlock()
	}()

	return ch
}

// PostRefresh announces a successful refresh.
func (h *Hub) PostRefresh(old, new models.ConfigMap) {
	delegate, subs := h.snapshot(models.DidRefreshConfig)

	if delegate != nil {
		delegate.MissionControlDidRefreshConfig(old, new)
	}

	n := models.Notification{
		Name: models.DidRefreshConfig,
		Old:  old,
		New:  new,
		At:   h.now(),
	}
	for _, s := range subs {
		s.fn(n)
	}
}

// PostFailure announces a failed refresh.
func (h *Hub) PostFailure(err error) {
	delegate, subs := h.snapshot(models.DidFailRefreshingConfig)

	if delegate != nil {
		delegate.MissionControlDidFailRefreshingConfig(err)
	}

	n := models.Notification{
		Name: models.DidFailRefreshingConfig,
		Err:  err,
		At:   h.now(),
	}
	if err != nil {
		n.Error = err.Error()
	}
	for _, s := range subs {
		s.fn(n)
	}
}

// snapshot copies the observers so callbacks run without the lock held and
// may themselves subscribe or unsubscribe.
func (h *Hub) snapshot(name models.EventName) (Delegate, []subscriber) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	subs := make([]subscriber, 0, len(h.subs))
	for _, s := range h.subs {
		if s.Name == name {
			subs = append(subs, s)
		}
	}
	return h.delegate, subs
}
