package reducer

import (
	"strings"

	"github.com/sandeepkv93/studyquest/internal/model"
)

func shopItemID(i model.ShopItem) string       { return i.ID }
func inventoryID(i model.InventoryItem) string { return i.ID }

func AddShopItem(s model.AppState, env Env, name string, cost int, icon string) model.AppState {
	name = strings.TrimSpace(name)
	if name == "" || cost <= 0 {
		return s
	}
	item := model.ShopItem{
		ID:   env.uniqueID(hasID(s.ShopItems, shopItemID)),
		Name: name,
		Cost: cost,
		Icon: icon,
	}
	s.ShopItems = append(append([]model.ShopItem(nil), s.ShopItems...), item)
	return s
}

func DeleteShopItem(s model.AppState, id string) model.AppState {
	i := indexOf(s.ShopItems, shopItemID, id)
	if i < 0 {
		return s
	}
	s.ShopItems = without(s.ShopItems, i)
	return s
}

// PurchaseItem debits the item's cost and adds an unused copy to the
// inventory. It returns the input unchanged and false when energy is short.
func PurchaseItem(s model.AppState, env Env, item model.ShopItem) (model.AppState, bool) {
	if item.Cost <= 0 || strings.TrimSpace(item.Name) == "" || s.Energy < item.Cost {
		return s, false
	}
	s.Energy -= item.Cost
	s.Inventory = prepend(s.Inventory, model.InventoryItem{
		ID:          env.uniqueID(hasID(s.Inventory, inventoryID)),
		Name:        item.Name,
		Cost:        item.Cost,
		Icon:        item.Icon,
		PurchasedAt: env.now(),
		Status:      model.InventoryUnused,
	})
	return s, true
}

func UseInventoryItem(s model.AppState, id string) model.AppState {
	i := indexOf(s.Inventory, inventoryID, id)
	if i < 0 || s.Inventory[i].Status == model.InventoryUsed {
		return s
	}
	item := s.Inventory[i]
	item.Status = model.InventoryUsed
	s.Inventory = replaced(s.Inventory, i, item)
	return s
}
