package classifier

import (
	"fmt"

	"github.com/crimson-sun/actionlog/internal/engine/normalize"
	"github.com/crimson-sun/actionlog/internal/model"
)

// ClassifyChat maps a chat line to a Chat action. Markup is stripped from the
// speaker name, which the host reports with rank icons embedded.
func ClassifyChat(ev model.Chat) model.Action {
	return model.Action{
		Category: model.CategoryChat,
		Detail: fmt.Sprintf("Speaker: %s, Channel: %s, Message: %s",
			normalize.StripTags(ev.Speaker), ev.Type, normalize.Truncate(ev.Message, normalize.MaxDetailRunes)),
	}
}

// ClassifyGroundItem maps a ground item spawn or despawn. Other entity kinds
// are not classified here.
func ClassifyGroundItem(ev model.RawEvent) (model.Action, bool) {
	var (
		e   model.Entity
		cat model.Category
	)
	switch v := ev.(type) {
	case model.EntitySpawn:
		e, cat = v.Entity, model.CategoryGroundItemSpawned
	case model.EntityDespawn:
		e, cat = v.Entity, model.CategoryGroundItemDespawned
	default:
		return model.Action{}, false
	}
	if e.Kind != model.EntityGroundItem {
		return model.Action{}, false
	}
	return model.Action{
		Category: cat,
		Detail: fmt.Sprintf("Item: %s, ID: %d, Quantity: %d, Location: %s",
			e.Name, e.ID, e.Quantity, e.Position),
	}, true
}
