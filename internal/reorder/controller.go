package reorder

import (
	"context"
	"sync"

	"github.com/Lixing-Zhang/menu-cms/internal/models"
)

// State is the controller's interaction state
type State int

const (
	StateIdle State = iota
	StateMoveMode
	StateDragging
	StateReordering
)

func (s State) String() string {
	switch s {
	case StateMoveMode:
		return "move-mode"
	case StateDragging:
		return "dragging"
	case StateReordering:
		return "reordering"
	default:
		return "idle"
	}
}

// Outcome reports what a Drop did
type Outcome int

const (
	// OutcomeIgnored: not in move mode, or a reorder is in flight
	OutcomeIgnored Outcome = iota
	// OutcomeNoop: nothing armed, or dropped onto itself
	OutcomeNoop
	// OutcomeStale: the dragged or target id is not in the local list
	OutcomeStale
	// OutcomeCommitted: the server accepted the new order
	OutcomeCommitted
	// OutcomeReverted: the server call failed and the list was reloaded
	OutcomeReverted
)

func (o Outcome) String() string {
	switch o {
	case OutcomeNoop:
		return "noop"
	case OutcomeStale:
		return "stale"
	case OutcomeCommitted:
		return "committed"
	case OutcomeReverted:
		return "reverted"
	default:
		return "ignored"
	}
}

// Controller swaps categories by drag and drop. It applies the new order to
// the store before the request and reloads from the server when the request
// fails. At most one reorder request is in flight.
type Controller struct {
	store  *Store
	api    CategoryAPI
	notify Notifier

	mu         sync.Mutex
	moveMode   bool
	dragged    int64
	dragging   bool
	reordering bool
}

// NewController creates a controller over store
func NewController(store *Store, api CategoryAPI, notify Notifier) *Controller {
	return &Controller{store: store, api: api, notify: notify}
}

// CanToggleMoveMode reports whether move mode is offered
func (c *Controller) CanToggleMoveMode() bool {
	return c.store.Len() >= 2
}

// ToggleMoveMode enters or leaves move mode and returns the new mode.
// Entering needs at least two categories; leaving drops any armed drag.
func (c *Controller) ToggleMoveMode() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.moveMode {
		c.moveMode = false
		c.clearDrag()
		return false
	}
	if c.store.Len() >= 2 {
		c.moveMode = true
	}
	return c.moveMode
}

// DragStart arms a drag of the category with id. It returns false when the
// drag was ignored.
func (c *Controller) DragStart(id int64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.moveMode || c.reordering {
		return false
	}
	c.dragged = id
	c.dragging = true
	return true
}

// Drop swaps the dragged category with targetID and sends the full list to
// the server. The request is detached from ctx cancellation.
func (c *Controller) Drop(ctx context.Context, targetID int64) Outcome {
	c.mu.Lock()
	if !c.moveMode || c.reordering {
		c.mu.Unlock()
		return OutcomeIgnored
	}
	if !c.dragging || c.dragged == targetID {
		c.clearDrag()
		c.mu.Unlock()
		return OutcomeNoop
	}

	draggedID := c.dragged
	c.clearDrag()

	order := c.store.Categories()
	i, j := indexOf(order, draggedID), indexOf(order, targetID)
	if i < 0 || j < 0 {
		c.mu.Unlock()
		return OutcomeStale
	}

	order[i], order[j] = order[j], order[i]
	c.store.replace(order)
	c.reordering = true
	c.mu.Unlock()

	ctx = context.WithoutCancel(ctx)
	outcome := OutcomeCommitted
	if err := c.api.ReorderCategories(ctx, order); err != nil {
		c.notify.Failure(MsgReorderFailed, err)
		// Load reports its own failure and keeps the optimistic order.
		_ = c.store.Load(ctx)
		outcome = OutcomeReverted
	} else {
		c.notify.Success(MsgReorderSuccess)
	}

	c.mu.Lock()
	c.reordering = false
	c.mu.Unlock()
	return outcome
}

// State returns the current interaction state
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch {
	case c.reordering:
		return StateReordering
	case c.dragging:
		return StateDragging
	case c.moveMode:
		return StateMoveMode
	default:
		return StateIdle
	}
}

// Reordering reports whether a reorder request is in flight
func (c *Controller) Reordering() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.reordering
}

func (c *Controller) clearDrag() {
	c.dragged = 0
	c.dragging = false
}

func indexOf(categories []models.Category, id int64) int {
	for i, cat := range categories {
		if cat.ID == id {
			return i
		}
	}
	return -1
}
