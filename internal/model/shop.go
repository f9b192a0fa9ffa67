package model

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var ErrInvalidInventoryStatus = errors.New("model: invalid inventory status")

type ShopItem struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Cost int    `json:"cost"`
	Icon string `json:"icon"`
}

func (i ShopItem) Validate() error {
	if strings.TrimSpace(i.ID) == "" {
		return errors.New("model: shop item id is required")
	}
	if strings.TrimSpace(i.Name) == "" {
		return errors.New("model: shop item name is required")
	}
	if i.Cost <= 0 {
		return fmt.Errorf("model: shop item cost must be positive, got %d", i.Cost)
	}
	return nil
}

type InventoryStatus string

const (
	InventoryUnused InventoryStatus = "unused"
	InventoryUsed   InventoryStatus = "used"
)

func (s InventoryStatus) IsValid() bool {
	return s == InventoryUnused || s == InventoryUsed
}

type InventoryItem struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Cost        int             `json:"cost"`
	Icon        string          `json:"icon"`
	PurchasedAt time.Time       `json:"purchasedAt"`
	Status      InventoryStatus `json:"status"`
}

func (i InventoryItem) Validate() error {
	if strings.TrimSpace(i.ID) == "" {
		return errors.New("model: inventory item id is required")
	}
	if strings.TrimSpace(i.Name) == "" {
		return errors.New("model: inventory item name is required")
	}
	if i.Cost < 0 {
		return errors.New("model: inventory item cost must not be negative")
	}
	if !i.Status.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidInventoryStatus, i.Status)
	}
	return nil
}
