package sqs

import (
	"errors"
	"fmt"
)

// Catalog lifecycle actions carried in CatalogMessage.Action.
const (
	ActionProductCreated = "product.created"
	ActionProductUpdated = "product.updated"
	ActionProductDeleted = "product.deleted"
	ActionItemCreated    = "item.created"
	ActionItemUpdated    = "item.updated"
	ActionItemDeleted    = "item.deleted"
)

var errUnknownAction = errors.New("unknown action")

// CatalogMessage is the notification published after a catalog change has been committed.
type CatalogMessage struct {
	Action       string `json:"action"`
	ProductID    int64  `json:"product_id,omitempty"`
	ItemID       int64  `json:"item_id,omitempty"`
	Name         string `json:"name,omitempty"`
	ItemsDeleted int64  `json:"items_deleted,omitempty"`
}

// Validate checks that the message carries a known action and the id that action is about.
func (m CatalogMessage) Validate() error {
	switch m.Action {
	case ActionProductCreated, ActionProductUpdated, ActionProductDeleted:
		if m.ProductID == 0 {
			return fmt.Errorf("%s message without product_id", m.Action)
		}
	case ActionItemCreated, ActionItemUpdated, ActionItemDeleted:
		if m.ItemID == 0 {
			return fmt.Errorf("%s message without item_id", m.Action)
		}
	default:
		return fmt.Errorf("%w: %q", errUnknownAction, m.Action)
	}
	return nil
}
